// Package dashboard is the terminal front end for pidash.
//
// The screen has two panes. The left pane is the device browser: a
// host -> device -> sensor tree where at most one host and one device are
// expanded at a time. Activating a sensor row opens a widget for it, and
// activating it again closes the widget. The right pane is the widget zone,
// listing the open widgets most recent first. Each widget is either a
// compact card (value, gauge, last update) or a braille graph of the last
// minute of samples.
//
// Model is a thin adapter: key presses become calls on selection.Tree and
// widget.Instance, and a refresh tick steps the simulator, delivers
// readings to the open widgets and redraws graphs so the time window keeps
// sliding even when a sensor goes quiet.
package dashboard

// Package script composes the client-side initialization script of a chart
// widget from serialized configuration.
//
// The composed body is wrapped in an immediately invoked function so the
// formatter bindings and the traces, layout and chartOptions bindings of one
// widget never collide with another widget on the same page:
//
//	(function () {
//	var fmt = <code>;                       // one per formatter, in order
//	var traces = [...];                     // inside the fetch callback
//	var layout = {...};                     // when a source is set
//	var chartOptions = {...};
//	Plotly.plot(document.getElementById("<id>"), traces, layout, chartOptions)
//	    .then(<remove loading bars>);       // only with loading bars
//	})();
//
// Compose performs no I/O and never inspects code fragments.
package script

// Package plot prepares spectrum data for the standard four panel SIP plot:
// resistivity magnitude and negative phase on semi-log axes, and real and
// imaginary conductivity on log-log axes.
//
// The package does not draw. [Panels] turns a [spectrum.Response] into
// labelled, scaled series and a [Renderer] writes them out. Rendering
// options live in a [Style] created once by the caller with [Setup] or
// [StyleFromEnv]; importing the package has no side effects.
package plot

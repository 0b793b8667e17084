// Package spectrum holds one complex SIP spectrum and derives its
// resistivity and conductivity views.
//
// A [Response] is built from exactly one complex array, either resistivity
// (rcomplex) or conductivity (ccomplex). The dual array is obtained from a
// [convert.Converter]; magnitude, phase and real/imaginary parts are then
// derived for both domains. Phases are atan2(Im, Re) in milliradians and are
// not negated.
//
// # Export
//
// Two-column views (for example [Response.RMagRPha]) can be flattened with
// [ToOneLine] in column-major order and written with [WriteRow] in the same
// text layout numpy's savetxt produces, so exported rows stay compatible
// with existing data files:
//
//	row := spectrum.ToOneLine(resp.RMagRPha())
//	err := spectrum.WriteRow(w, row)
package spectrum

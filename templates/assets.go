package templates

import (
	_ "embed"
)

// CSS is the stylesheet shipped with every generated site; badge and report
// markup carries the civet-* classes it styles.
//
//go:embed assets/civet.css
var CSS []byte

// Package compileinfoprint is imported by the tcgaexpr commands for the side
// effect of logging the build's commit to os.Stderr before anything else runs.
package compileinfoprint

import "github.com/carbocation/tcgaexpr/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}

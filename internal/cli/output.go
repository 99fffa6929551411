package cli

import (
	"fmt"
	"io"
)

// WarnOffline prints the degraded-mode banner shown when the collection
// did not come from the backend.
func WarnOffline(w io.Writer, source string) {
	fmt.Fprintln(w, WarningStyle.Render(
		fmt.Sprintf("Backend unreachable, working from %s; edits will sync when it returns", source)))
}

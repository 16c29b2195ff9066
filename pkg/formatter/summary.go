package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/civicworks/ecrctl/internal/models"
)

// PrintImageTable formats and prints shipped image details in a table.
func PrintImageTable(w io.Writer, images []models.ImageInfo) {
	if len(images) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "REGISTRY\tREPOSITORY\tTAG\tDIGEST\tSIZE\tPUSHED")

	for _, img := range images {
		pushedStr := "unknown"
		if img.PushedAt != nil {
			pushedStr = humanize.Time(*img.PushedAt)
		}
		sizeStr := "-"
		if img.SizeBytes > 0 {
			sizeStr = humanize.Bytes(uint64(img.SizeBytes))
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			img.Registry,
			img.Repository,
			img.Tag,
			shortDigest(img.Digest),
			sizeStr,
			pushedStr,
		)
	}

	tw.Flush()
}

// PrintSessionInfo prints the assumed-role session details so the operator
// knows which role was entered and how long the window lasts.
func PrintSessionInfo(w io.Writer, session models.SessionInfo) {
	fmt.Fprintf(w, "Assumed %s (MFA %s)\n", session.RoleARN, session.MFASerial)
	if !session.Expires.IsZero() {
		fmt.Fprintf(w, "Session expires %s\n", humanize.Time(session.Expires))
	}
}

// shortDigest trims a sha256 digest to a displayable length.
func shortDigest(digest string) string {
	const shown = len("sha256:") + 12
	if len(digest) > shown {
		return digest[:shown]
	}
	return digest
}

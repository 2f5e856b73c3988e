package torznab

import (
	"fmt"
	"strings"
	"time"

	"github.com/sp0x/torznab-client/release"
)

// Torrent is a feed item normalized into a torrent release.
type Torrent struct {
	Name       string
	Size       uint64
	Categories []uint32
	// Link is either a magnet uri or a direct download link.
	Link            string
	Seeders         *uint32
	Leechers        *uint32
	MinimumRatio    *float64
	MinimumSeedTime *time.Duration

	GUID        string
	PublishDate *time.Time
	// Release is set when a release name parser accepted the name.
	Release *release.Info
}

func (t *Torrent) String() string {
	return fmt.Sprintf("%s (%d bytes)", t.Name, t.Size)
}

// IsMagnet reports whether the link is a magnet uri.
func (t *Torrent) IsMagnet() bool {
	return strings.HasPrefix(t.Link, "magnet:")
}

// Peers returns seeders + leechers, or 0 when the swarm size is unknown.
func (t *Torrent) Peers() uint64 {
	var peers uint64
	if t.Seeders != nil {
		peers += uint64(*t.Seeders)
	}
	if t.Leechers != nil {
		peers += uint64(*t.Leechers)
	}
	return peers
}

package augment

import (
	"log"

	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameCarriers sets the display name and color of every carrier in n. Carriers
// without a configured nice name fall back to their title-cased name; missing
// colors are logged.
func NameCarriers(n *network.Network, plotting config.Plotting) {
	title := cases.Title(language.Und, cases.NoLower)
	missing := make([]string, 0)

	for _, c := range n.Carriers() {
		nice, ok := plotting.NiceNames[c.Name]
		if !ok {
			nice = title.String(c.Name)
		}
		color, ok := plotting.TechColors[c.Name]
		if !ok {
			missing = append(missing, c.Name)
		}
		n.StyleCarrier(c.Name, nice, color)
	}

	if len(missing) > 0 {
		log.Printf("[Carriers] tech_colors for carriers %q not defined in config\n", missing)
	}
}

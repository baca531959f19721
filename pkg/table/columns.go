package table

import (
	"fmt"
	"strings"

	"github.com/xhad/knowtab/internal/models"
)

// TechAreas is the fixed list of technology categories the relevance
// column asks about. Loaded once, never mutated.
var TechAreas = []string{
	"AI and ML", "Application Infrastructure and Software", "Augmented and Virtual Reality",
	"Blockchain", "Cloud Computing and Virtualization", "Computer Vision", "Cryptology",
	"Cybersecurity", "Data Science", "Digital Forensics", "Enterprise Business Technologies",
	"Hardware, Semiconductors and Embedded", "Human Computer Interaction",
	"Identity Management and Authentication", "Internet of Things", "Location and Presence",
	"Material Science", "Mobility and End Points", "Natural Language Processing",
	"Next Generation Computing", "Operating Systems", "Quantum Technology",
	"Robotics and Automation", "Software Defined Infrastructure", "Unmanned Aerial Vehicles",
	"Wireless and Networking Technologies", "5G and 6G", "API and development",
	"Mobile development", "Website development",
}

// Columns builds the three classification columns. Pure construction, the
// same result every call.
func Columns() []models.Column {
	return []models.Column{
		{
			ID:         "is_indian",
			Hidden:     false,
			EntityType: "Company",
			Type:       "boolean",
			Generate:   true,
			Query:      "Is this company based in India or of Indian origin?",
			Rules: []models.Rule{
				{ID: "rule1", Type: "format", Value: "Y/N"},
			},
		},
		{
			ID:         "is_startup",
			Hidden:     false,
			EntityType: "Company",
			Type:       "boolean",
			Generate:   true,
			Query:      "Is this company a startup?",
			Rules: []models.Rule{
				{ID: "rule2", Type: "format", Value: "Y/N"},
			},
		},
		{
			ID:         "is_tech",
			Hidden:     false,
			EntityType: "Company",
			Type:       "boolean",
			Generate:   true,
			Query: fmt.Sprintf(
				"Is this company related to technology, specifically in any of these areas: %s?",
				strings.Join(TechAreas, ", ")),
			Rules: []models.Rule{
				{ID: "rule3", Type: "format", Value: "Y/N"},
			},
		},
	}
}

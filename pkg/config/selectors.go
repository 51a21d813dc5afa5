package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors is the full set of ADF component selectors the scrapers drive.
// The IDs are generated by the portal's UI framework and have survived years
// of deployments, but they are not contractual: LoadOverrides lets an
// operator patch individual entries from a YAML file when the portal is
// upgraded, without rebuilding.
type Selectors struct {
	Catalog    CatalogSelectors    `yaml:"catalog"`
	Login      LoginSelectors      `yaml:"login"`
	Grades     GradesSelectors     `yaml:"grades"`
	History    HistorySelectors    `yaml:"history"`
	Enrollment EnrollmentSelectors `yaml:"enrollment"`
}

// CatalogSelectors addresses the public catalog's cascading search form.
type CatalogSelectors struct {
	Level        string `yaml:"level"`
	Sede         string `yaml:"sede"`
	Faculty      string `yaml:"faculty"`
	Program      string `yaml:"program"`
	Typology     string `yaml:"typology"`
	NameInput    string `yaml:"name_input"`
	CreditsInput string `yaml:"credits_input"`
	SearchButton string `yaml:"search_button"`
	ResultsTable string `yaml:"results_table"`

	// CascadeTargets are the raw ADF component IDs of every cascade-dependent
	// field on the form. They are pre-registered as partial-update targets
	// before each cascade trigger; see catalog.Navigator.
	CascadeTargets []string `yaml:"cascade_targets"`
}

// LoginSelectors addresses the centralized login form the portal redirects to.
type LoginSelectors struct {
	UsernameInput string `yaml:"username_input"`
	PasswordInput string `yaml:"password_input"`
	SubmitButton  string `yaml:"submit_button"`
	// ErrorRegion matches the places the login page renders a rejection
	// message (bad credentials) across its known skins.
	ErrorRegion string `yaml:"error_region"`
}

// GradesSelectors addresses the private grade report page.
type GradesSelectors struct {
	PeriodSelect string `yaml:"period_select"`
	Table        string `yaml:"table"`
}

// HistorySelectors addresses the private academic history page.
type HistorySelectors struct {
	PAPALabel string `yaml:"papa_label"`
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
}

// EnrollmentSelectors addresses the private enrollment page.
type EnrollmentSelectors struct {
	Region string `yaml:"region"`
	Table  string `yaml:"table"`
}

// DefaultSelectors returns the selector set observed on the current portal.
func DefaultSelectors() Selectors {
	return Selectors{
		Catalog: CatalogSelectors{
			Level:        `#pt1\:r1\:0\:soc1\:\:content`,
			Sede:         `#pt1\:r1\:0\:soc9\:\:content`,
			Faculty:      `#pt1\:r1\:0\:soc2\:\:content`,
			Program:      `#pt1\:r1\:0\:soc3\:\:content`,
			Typology:     `#pt1\:r1\:0\:soc4\:\:content`,
			NameInput:    `#pt1\:r1\:0\:it1\:\:content`,
			CreditsInput: `#pt1\:r1\:0\:it2\:\:content`,
			SearchButton: `#pt1\:r1\:0\:cb1`,
			ResultsTable: `#pt1\:r1\:0\:t1`,
			CascadeTargets: []string{
				"pt1:r1:0:soc9", // sede
				"pt1:r1:0:soc2", // faculty
				"pt1:r1:0:soc3", // program
				"pt1:r1:0:soc4", // typology
			},
		},
		Login: LoginSelectors{
			UsernameInput: "#username",
			PasswordInput: "#password",
			SubmitButton:  "#kc-login",
			ErrorRegion:   ".alert-error, .kc-feedback-text, #kc-error-message",
		},
		Grades: GradesSelectors{
			PeriodSelect: `#pt1\:r1\:0\:soc1\:\:content`,
			Table:        `#pt1\:r1\:0\:t1`,
		},
		History: HistorySelectors{
			PAPALabel: `#pt1\:r1\:0\:ot1`,
			Table:     `#pt1\:r1\:0\:t1`,
			Region:    `#pt1\:r1\:0`,
		},
		Enrollment: EnrollmentSelectors{
			Region: `#pt1\:r1\:0`,
			Table:  `#pt1\:r1\:0\:t1`,
		},
	}
}

// LoadOverrides merges selector overrides from a YAML file into s. Only keys
// present in the file are replaced.
func (s *Selectors) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read selector overrides: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse selector overrides %s: %w", path, err)
	}
	return nil
}

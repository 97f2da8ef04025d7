package config

import "github.com/mvp-joe/project-scrub/internal/scrub"

// Policy converts the annotation settings into a scrub policy.
func (c *Config) Policy() scrub.Policy {
	return scrub.NewPolicy(c.Annotations.Strip, c.Annotations.Include)
}

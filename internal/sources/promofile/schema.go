package promofile

// Config is the top-level structure of the promos.yaml file maintained by
// the marketing team.
type Config struct {
	Promos []PromoEntry `yaml:"promos"`
}

// PromoEntry is one authored promo code. Dates are "2006-01-02" or
// RFC 3339; both are accepted by the mapper.
type PromoEntry struct {
	Code            string `yaml:"code"`
	Description     string `yaml:"description,omitempty"`
	DiscountPercent int    `yaml:"discount_percent"`
	ValidFrom       string `yaml:"valid_from,omitempty"`
	ValidUntil      string `yaml:"valid_until,omitempty"`
	MaxUses         int    `yaml:"max_uses,omitempty"`
	Disabled        bool   `yaml:"disabled,omitempty"`
}

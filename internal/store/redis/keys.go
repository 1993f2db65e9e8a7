package redis

const (
	// KeyFavorites is the fixed key of the favorites blob. The whole
	// collection is read and written as one JSON array.
	KeyFavorites = "enjoypark:favorites"
	// KeyCredential is the fixed key of the stored bearer token.
	KeyCredential = "enjoypark:credential"
	// KeyPrefixPromo is the prefix for promo code keys.
	KeyPrefixPromo = "enjoypark:promo:"
	// KeyAllPromos is the set of all known promo codes.
	KeyAllPromos = "enjoypark:promos:all"
	// KeyPrefixPOI is the prefix for mirrored catalog entries.
	KeyPrefixPOI = "enjoypark:poi:"
	// KeyAllPOIs is the set of all mirrored catalog ids.
	KeyAllPOIs = "enjoypark:pois:all"
)

// PromoKey returns the Redis key for a promo code.
func PromoKey(code string) string {
	return KeyPrefixPromo + code
}

// POIKey returns the Redis key for a mirrored catalog entry.
func POIKey(id string) string {
	return KeyPrefixPOI + id
}

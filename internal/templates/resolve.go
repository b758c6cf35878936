/**
 * @description
 * This file implements storefront config resolution. A rendered storefront
 * merges three config layers: a per-request override (preview mode), the
 * store's saved template config, and the template's compiled-in defaults.
 * Precedence is override > stored > defaults, applied per key; absent keys
 * fall through to the next layer.
 */
package templates

// Config is a template configuration document (hero copy, colors, toggles).
type Config map[string]any

// Resolve merges the three config layers with explicit precedence. The
// inputs are not mutated; the result is always a fresh map.
func Resolve(override, stored, defaults Config) Config {
	resolved := make(Config, len(defaults)+len(stored)+len(override))
	for k, v := range defaults {
		resolved[k] = v
	}
	for k, v := range stored {
		resolved[k] = v
	}
	for k, v := range override {
		resolved[k] = v
	}
	return resolved
}

// Package config loads formset layouts from JSON or YAML files so page
// templates can rename the container, marker ids and state classes without
// code changes.
package config

// Package topic provides hierarchical topic types and pattern matching for the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	catalog.changed
//	basket.product.added
//	input.contacts.email
//
// # Wildcards
//
// Two wildcard patterns are supported:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	input.contacts.*      matches input.contacts.email, input.contacts.phone
//	basket.**             matches basket.changed, basket.product.added
//	errors.*.changed      matches errors.delivery.changed, errors.contacts.changed
//	**                    matches everything
//
// # Usage
//
//	m := topic.NewMatcher()
//	m.Add(topic.Topic("input.contacts.*"))
//	m.Add(topic.Topic("input.contacts.email"))
//
//	matches := m.Match(topic.Topic("input.contacts.email"))
//	// matches contains both patterns
package topic

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/clangdb

package clangdb

// orderRules puts conditioned rules first, preserving declaration order, and
// appends only the first unconditional rule.
func orderRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))

	var fallback *Rule
	for i := range rules {
		if rules[i].Conditional() {
			out = append(out, rules[i])
			continue
		}

		if fallback == nil {
			fallback = &rules[i]
		}
	}

	if fallback != nil {
		out = append(out, *fallback)
	}

	return out
}

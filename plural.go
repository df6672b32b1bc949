package catalog

// pick returns the plural variant name for (rule, count), per spec §4.4.
// It is a total function: every rule and every count maps onto one of
// {zero, one, two, few, many, other}.
func pick(rule PluralRule, count int) string {
	if count < 0 {
		return "other"
	}

	switch rule {
	case RuleSlavic:
		return pickSlavic(count)
	case RuleArabic:
		return pickArabic(count)
	default:
		return pickDefault(count)
	}
}

func pickDefault(count int) string {
	switch count {
	case 0:
		return "zero"
	case 1:
		return "one"
	default:
		return "other"
	}
}

func pickSlavic(count int) string {
	m10 := count % 10
	m100 := count % 100

	if m10 == 1 && m100 != 11 {
		return "one"
	}
	if m10 >= 2 && m10 <= 4 && !(m100 >= 12 && m100 <= 14) {
		return "few"
	}
	if m10 == 0 || (m10 >= 5 && m10 <= 9) || (m100 >= 11 && m100 <= 14) {
		return "many"
	}
	return "other"
}

func pickArabic(count int) string {
	m100 := count % 100

	switch count {
	case 0:
		return "zero"
	case 1:
		return "one"
	case 2:
		return "two"
	}
	if m100 >= 3 && m100 <= 10 {
		return "few"
	}
	if m100 >= 11 && m100 <= 99 {
		return "many"
	}
	return "other"
}

// translatePlural implements the public translate_plural operation (spec §4.4):
//  1. if token already carries a variant, use it verbatim;
//  2. else try base{pick(rule,count)};
//  3. else try base{other};
//  4. else fall back to any one recorded variant, in stable (lexicographic) order;
//  5. else use base itself.
func translatePlural(snap *CatalogSnapshot, token string, count int, args []string) string {
	if snap == nil {
		return "⟦NO_CATALOG⟧"
	}

	base, variant, ok := validateToken(token)
	if !ok {
		return "⟦" + token + "⟧"
	}

	if variant != "" {
		return translate(snap, joinVariant(base, variant), args)
	}

	desired := pick(snap.metadata.PluralRule, count)
	if _, hit := snap.lookup(joinVariant(base, desired)); hit {
		return translate(snap, joinVariant(base, desired), args)
	}

	if desired != "other" {
		if _, hit := snap.lookup(joinVariant(base, "other")); hit {
			return translate(snap, joinVariant(base, "other"), args)
		}
	}

	if variants := snap.variantsOf(base); len(variants) > 0 {
		return translate(snap, joinVariant(base, variants[0]), args)
	}

	return translate(snap, base, args)
}

package swift

import "github.com/eaburns/objc2swift/internal/intent"

// decorator inspects one intention and appends zero or one modifier
// keyword to modifiers. Each concrete decorator type-switches on the
// concrete intention type it cares about and is a no-op for every other
// kind, so the same fixed chain runs over properties, methods and
// initializers alike.
type decorator func(i intent.Intention, modifiers []string) []string

// chain is the fixed, order-significant sequence every member's leading
// keyword run is built from: access level, setter access level, the
// optional protocol-method marker, static, override, convenience,
// mutating, then ownership. Earlier entries are no-ops for kinds they
// don't apply to, so running the whole chain over every kind is simpler
// than branching per kind at the call site.
var chain = []decorator{
	accessLevelDecorator,
	setterAccessDecorator,
	optionalDecorator,
	staticDecorator,
	overrideDecorator,
	convenienceDecorator,
	mutatingDecorator,
	ownershipDecorator,
}

// Modifiers runs the full decorator chain over i and returns its leading
// keyword sequence, in chain order.
func Modifiers(i intent.Intention) []string {
	var mods []string
	for _, d := range chain {
		mods = d(i, mods)
	}
	return mods
}

func accessLevelDecorator(i intent.Intention, mods []string) []string {
	h := intent.HeaderOf(i)
	if h.AccessLevel == intent.AccessInternal {
		return mods // Swift's default; omitted rather than spelled out.
	}
	return append(mods, h.AccessLevel.String())
}

func setterAccessDecorator(i intent.Intention, mods []string) []string {
	p, ok := i.(*intent.Property)
	if !ok {
		return mods
	}
	if p.SetterAccessLevel == p.AccessLevel {
		return mods
	}
	return append(mods, p.SetterAccessLevel.String()+"(set)")
}

func optionalDecorator(i intent.Intention, mods []string) []string {
	m, ok := i.(*intent.Method)
	if !ok || !m.IsOptional {
		return mods
	}
	return append(mods, "optional")
}

func staticDecorator(i intent.Intention, mods []string) []string {
	if m, ok := i.(*intent.Method); ok && m.IsClassMethod {
		return append(mods, "static")
	}
	return mods
}

func overrideDecorator(i intent.Intention, mods []string) []string {
	if m, ok := i.(*intent.Method); ok && m.IsOverride {
		return append(mods, "override")
	}
	return mods
}

func convenienceDecorator(i intent.Intention, mods []string) []string {
	if init, ok := i.(*intent.Init); ok && init.IsConvenience {
		return append(mods, "convenience")
	}
	return mods
}

func mutatingDecorator(i intent.Intention, mods []string) []string {
	// The parsed grammar carries no information distinguishing a
	// value-type mutating method from a plain one; every Method here
	// targets a class (reference type) in Swift, where mutating never
	// applies. Present for chain-position completeness and for a future
	// front end that adds struct/enum intentions.
	return mods
}

func ownershipDecorator(i intent.Intention, mods []string) []string {
	p, ok := i.(*intent.Property)
	if !ok || p.Storage.Ownership == intent.Strong {
		return mods
	}
	return append(mods, p.Storage.Ownership.String())
}

package subdomain

// reservedNames are platform-level subdomains that must never be handed to
// a tenant. The list is maintained by the operator, not user-editable.
var reservedNames = map[string]bool{
	"www":       true,
	"admin":     true,
	"api":       true,
	"app":       true,
	"mail":      true,
	"smtp":      true,
	"blog":      true,
	"shop":      true,
	"dashboard": true,
	"support":   true,
	"help":      true,
	"status":    true,
	"dev":       true,
	"staging":   true,
	"test":      true,
	"demo":      true,
	"docs":      true,
	"cdn":       true,
	"static":    true,
	"assets":    true,
	"files":     true,
	"img":       true,
}

func IsReserved(normalized string) bool {
	return reservedNames[normalized]
}

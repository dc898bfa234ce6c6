package security

// In-memory client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string
	Enabled bool
}

var Clients = map[string]Client{
	"storefront-web": {
		ID: "storefront-web", Secret: "storefront-web-secret",
		Perms:   []string{"checkout.inquiry", "checkout.commit", "checkout.read"},
		Enabled: true,
	},
	"storefront-app": {
		ID: "storefront-app", Secret: "storefront-app-secret",
		Perms:   []string{"checkout.inquiry", "checkout.commit", "checkout.read"},
		Enabled: true,
	},
	"svc-backoffice": {
		ID: "svc-backoffice", Secret: "backoffice-secret",
		Perms:   []string{"checkout.read"},
		Enabled: true,
	},
}

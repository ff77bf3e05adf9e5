package domain

import "encoding/json"

// Resource identifies one of the backend's editable record collections.
// Record payload shapes are owned by the backend; the console passes them
// through as opaque JSON documents.
type Resource string

const (
	ResourcePages    Resource = "pages"
	ResourcePosts    Resource = "posts"
	ResourceUsers    Resource = "users"
	ResourceAccounts Resource = "accounts"
	ResourcePayments Resource = "payments"
	ResourceRanks    Resource = "ranks"
)

// Resources lists every editable collection in display order.
var Resources = []Resource{
	ResourcePages,
	ResourcePosts,
	ResourceUsers,
	ResourceAccounts,
	ResourcePayments,
	ResourceRanks,
}

// IsValid reports whether r names a known collection.
func (r Resource) IsValid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// View returns the console view that displays this collection.
func (r Resource) View() View {
	return View(r)
}

// Document is an opaque backend record.
type Document = json.RawMessage

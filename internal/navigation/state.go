// Package navigation is the view-routing state machine of the
// QuickSupply client. State is an immutable value: every transition
// returns a new State, so the guard table is mechanically enforceable
// and each transition is trivially idempotent.
package navigation

import "quicksupply/internal/model"

// View names one screen of the application.
type View string

const (
	ViewLanding            View = "landing"
	ViewBuyer              View = "buyer"
	ViewBuyerLogin         View = "buyer_login"
	ViewBuyerProfile       View = "buyer_profile"
	ViewSupplierLogin      View = "supplier_login"
	ViewSupplierDashboard  View = "supplier_dashboard"
	ViewSupplierOnboarding View = "supplier_onboarding"
	ViewSupplierProfile    View = "supplier_profile"
	ViewSupplierOwnProfile View = "supplier_own_profile"
	ViewProductDetail      View = "product_detail"
)

// Profile is the session identity the guards consult.
type Profile struct {
	UserID   string
	Username string
	Email    string
}

// MatchResult holds the most recent AI match outcome: ordered ids and a
// parallel explanation list.
type MatchResult struct {
	IDs      []string          `json:"ids"`
	Analysis []MatchedSupplier `json:"analysis"`
}

// MatchedSupplier explains one AI match.
type MatchedSupplier struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// State is the full navigation state of one session. It is pure runtime
// state, replaced wholesale by transitions and discarded on reload.
type State struct {
	View View

	// Session identity. At most one of the two profiles is set.
	SupplierProfile    *Profile
	BuyerProfile       *Profile
	RegisteredSupplier bool
	LoggedInBuyer      bool

	// Transient UI selections.
	SelectedSupplierID string
	SelectedProductID  string
	ReturnView         View // single-level back target for product detail
	ChatRecipientID    string
	ChatInitialMessage string

	// Search and AI-match context.
	SearchTerm   string
	ActiveSector string
	Match        MatchResult
}

// NewState returns the initial state: landing, pending bootstrap.
func NewState() State {
	return State{View: ViewLanding, ActiveSector: "All", ReturnView: ViewBuyer}
}

// Bootstrap resolves the asynchronous session step. A supplier session
// lands on the dashboard when a dossier exists, onboarding otherwise; a
// buyer session lands on the directory; no session stays on landing.
func (s State) Bootstrap(role model.Role, profile Profile, hasDossier bool) State {
	switch role {
	case model.RoleSupplier:
		s.SupplierProfile = &profile
		s.BuyerProfile = nil
		s.RegisteredSupplier = true
		s.LoggedInBuyer = false
		if hasDossier {
			s.View = ViewSupplierDashboard
		} else {
			s.View = ViewSupplierOnboarding
		}
	case model.RoleBuyer:
		s.BuyerProfile = &profile
		s.SupplierProfile = nil
		s.LoggedInBuyer = true
		s.RegisteredSupplier = false
		s.View = ViewBuyer
	default:
		s.View = ViewLanding
	}
	return s
}

// BecomeSupplier routes the "I am a supplier" action: dashboard for a
// registered supplier with a dossier, onboarding when the session holds
// supplier profile metadata but no dossier yet, login otherwise.
func (s State) BecomeSupplier(hasDossier bool) State {
	switch {
	case s.RegisteredSupplier && hasDossier:
		s.View = ViewSupplierDashboard
	case s.SupplierProfile != nil:
		s.View = ViewSupplierOnboarding
	default:
		s.View = ViewSupplierLogin
	}
	return s
}

// BecomeBuyer routes the "I am a buyer" action.
func (s State) BecomeBuyer() State {
	if s.LoggedInBuyer {
		s.View = ViewBuyer
	} else {
		s.View = ViewBuyerLogin
	}
	return s
}

// SupplierLogin records a successful supplier sign-in. The destination
// depends on whether a dossier already exists for this identity.
func (s State) SupplierLogin(profile Profile, hasDossier bool) State {
	s.SupplierProfile = &profile
	s.RegisteredSupplier = true
	s.LoggedInBuyer = false
	s.BuyerProfile = nil
	if hasDossier {
		s.View = ViewSupplierDashboard
	} else {
		s.View = ViewSupplierOnboarding
	}
	return s
}

// BuyerLogin records a successful buyer sign-in.
func (s State) BuyerLogin(profile Profile) State {
	s.BuyerProfile = &profile
	s.LoggedInBuyer = true
	s.RegisteredSupplier = false
	s.SupplierProfile = nil
	s.View = ViewBuyer
	return s
}

// CompleteOnboarding lands a freshly registered supplier on the
// dashboard.
func (s State) CompleteOnboarding(dossierName string) State {
	s.RegisteredSupplier = true
	if s.SupplierProfile != nil {
		p := *s.SupplierProfile
		p.Username = dossierName
		s.SupplierProfile = &p
	}
	s.View = ViewSupplierDashboard
	return s
}

// OpenSupplierProfile drills into a supplier's public profile. found is
// the lookup outcome; a miss silently keeps the current view.
func (s State) OpenSupplierProfile(supplierID string, found bool) State {
	if !found {
		return s
	}
	s.SelectedSupplierID = supplierID
	s.View = ViewSupplierProfile
	return s
}

// OpenOwnProfile shows the owner's aggregated dossier view.
func (s State) OpenOwnProfile() State {
	s.View = ViewSupplierOwnProfile
	return s
}

// OpenBuyerProfile shows the buyer's account screen with order history.
// An anonymous session is routed to the buyer login instead.
func (s State) OpenBuyerProfile() State {
	if s.LoggedInBuyer {
		s.View = ViewBuyerProfile
	} else {
		s.View = ViewBuyerLogin
	}
	return s
}

// OpenProductDetail drills into a product, remembering the current view
// for single-level back navigation. Re-opening from product detail keeps
// the original return view instead of trapping back navigation.
func (s State) OpenProductDetail(supplierID, productID string) State {
	if s.View != ViewProductDetail {
		s.ReturnView = s.View
	}
	s.SelectedSupplierID = supplierID
	s.SelectedProductID = productID
	s.View = ViewProductDetail
	return s
}

// BackFromProductDetail restores the view stored when the detail was
// opened.
func (s State) BackFromProductDetail() State {
	s.View = s.ReturnView
	s.SelectedProductID = ""
	return s
}

// BackFromProfile leaves a profile view: the owner's profile returns to
// the dashboard, a public profile and the buyer's account screen return
// to the directory.
func (s State) BackFromProfile() State {
	switch s.View {
	case ViewSupplierOwnProfile:
		s.View = ViewSupplierDashboard
	case ViewSupplierProfile, ViewBuyerProfile:
		s.View = ViewBuyer
	}
	return s
}

// OpenChat stores the conversation context for the messaging panel.
func (s State) OpenChat(supplierID, initialMessage string) State {
	s.ChatRecipientID = supplierID
	s.ChatInitialMessage = initialMessage
	return s
}

// CloseChat clears the conversation context.
func (s State) CloseChat() State {
	s.ChatRecipientID = ""
	s.ChatInitialMessage = ""
	return s
}

// SetSearch records the active search term and sector filter. Changing
// the sector clears a previous AI match, mirroring the directory page.
func (s State) SetSearch(term, sector string) State {
	s.SearchTerm = term
	if sector != "" && sector != s.ActiveSector {
		s.ActiveSector = sector
		s.Match = MatchResult{}
	}
	return s
}

// ApplyMatch records an AI match outcome and shows the directory.
func (s State) ApplyMatch(result MatchResult) State {
	s.Match = result
	s.View = ViewBuyer
	return s
}

// Home returns to landing and clears the search, filter and AI-match
// context while keeping the session.
func (s State) Home() State {
	s.View = ViewLanding
	s.SearchTerm = ""
	s.ActiveSector = "All"
	s.Match = MatchResult{}
	return s
}

// Logout clears all session and profile state and returns to landing.
func (s State) Logout() State {
	return NewState()
}

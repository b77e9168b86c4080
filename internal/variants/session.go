package variants

import "comanda/internal/models"

// Scope addresses which selection a mutation or query applies to. Simple
// items use ScopeSimple; mixed items configure two independent
// preparations.
type Scope string

const (
	ScopeSimple Scope = "simple"
	ScopePrep1  Scope = "prep1"
	ScopePrep2  Scope = "prep2"
)

// Session holds the in-progress selection state while one dish instance is
// being configured. It is edited by exactly one interactive session at a
// time and is discarded on cancel or consumed on confirm.
//
// The session records reveal history per scope: a group shown by a
// ShowRule stays visible for the rest of the session even after its
// trigger is deselected. Validity is checked against that sticky view.
type Session struct {
	item       *models.MenuItem
	selections map[Scope]Selection
	revealed   map[Scope]map[string]bool
}

// NewSession starts an empty configuration session for the given item.
func NewSession(item *models.MenuItem) *Session {
	s := &Session{
		item:       item,
		selections: make(map[Scope]Selection, 3),
		revealed:   make(map[Scope]map[string]bool, 3),
	}
	for _, scope := range []Scope{ScopeSimple, ScopePrep1, ScopePrep2} {
		s.selections[scope] = NewSelection()
		s.revealed[scope] = VisibleGroups(item, s.selections[scope])
	}
	return s
}

// Item returns the menu item under configuration.
func (s *Session) Item() *models.MenuItem { return s.item }

// Selection returns the current selection for a scope.
func (s *Session) Selection(scope Scope) Selection {
	return s.selections[scope]
}

func (s *Session) recordReveals(scope Scope) {
	for gt := range VisibleGroups(s.item, s.selections[scope]) {
		s.revealed[scope][gt] = true
	}
}

// Toggle applies a single-select toggle in the given scope.
func (s *Session) Toggle(scope Scope, groupType, value string) {
	s.selections[scope] = SetSingle(s.item, s.selections[scope], groupType, value)
	s.recordReveals(scope)
}

// Replace sets the full option set of a multi-select group in the given
// scope.
func (s *Session) Replace(scope Scope, groupType string, values []string) {
	s.selections[scope] = SetMulti(s.item, s.selections[scope], groupType, values)
	s.recordReveals(scope)
}

// VisibleGroups returns the sticky visible set for a scope: everything the
// current selection reveals plus everything revealed earlier in the
// session.
func (s *Session) VisibleGroups(scope Scope) map[string]bool {
	visible := make(map[string]bool, len(s.revealed[scope]))
	for gt := range s.revealed[scope] {
		visible[gt] = true
	}
	return visible
}

// DisabledOptions returns the disabled option labels for a scope. Unlike
// visibility, disabling is not sticky: deselecting the trigger re-enables
// its targets.
func (s *Session) DisabledOptions(scope Scope) map[string]bool {
	return DisabledOptions(s.item, s.selections[scope])
}

// IsValid reports whether the whole session is complete enough to build an
// order line.
func (s *Session) IsValid() bool {
	if s.item.IsMixed {
		prep1 := s.selections[ScopePrep1]
		prep2 := s.selections[ScopePrep2]
		if prep1.IsEmpty() || !PrepValidWith(s.item, prep1, s.VisibleGroups(ScopePrep1)) {
			return false
		}
		if prep2.IsEmpty() {
			return true
		}
		return PrepValidWith(s.item, prep2, s.VisibleGroups(ScopePrep2))
	}
	return PrepValidWith(s.item, s.selections[ScopeSimple], s.VisibleGroups(ScopeSimple))
}

// Price returns the live resolved unit price for the current state.
func (s *Session) Price() float64 {
	if s.item.IsMixed {
		return s.item.BasePrice
	}
	return ResolvePrice(s.item, s.selections[ScopeSimple])
}

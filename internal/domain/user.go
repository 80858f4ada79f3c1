package domain

// Participant is one of the two people the bot tracks.
type Participant int

const (
	UserA Participant = iota
	UserB
)

// Other returns the opposite participant.
func (p Participant) Other() Participant {
	if p == UserA {
		return UserB
	}
	return UserA
}

// Member binds a participant to its messaging address and display name.
type Member struct {
	ID   string // e.g. whatsapp:+911234567890
	Name string
}

// Roster is the fixed allow-list of the two participants.
type Roster struct {
	members [2]Member
}

func NewRoster(a, b Member) Roster {
	return Roster{members: [2]Member{a, b}}
}

// Lookup resolves a sender identifier to a participant.
func (r Roster) Lookup(id string) (Participant, bool) {
	for i, m := range r.members {
		if m.ID == id {
			return Participant(i), true
		}
	}
	return 0, false
}

func (r Roster) Member(p Participant) Member { return r.members[p] }
func (r Roster) ID(p Participant) string     { return r.members[p].ID }
func (r Roster) Name(p Participant) string   { return r.members[p].Name }

// All returns both participants in roster order.
func (r Roster) All() []Participant { return []Participant{UserA, UserB} }

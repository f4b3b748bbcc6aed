package policy

import "diamond-exchange/internal/models"

// Relation is a role an actor plays relative to a resource
type Relation string

const (
	Admin  Relation = "admin"
	Owner  Relation = "owner"
	Buyer  Relation = "buyer"
	Seller Relation = "seller"
	Anyone Relation = "anyone"
)

// Action names an operation guarded by a Table
type Action string

// Subject carries the identities attached to a resource. Empty fields never
// match an actor.
type Subject struct {
	OwnerID  string
	BuyerID  string
	SellerID string
}

// Table maps each action to the relations allowed to perform it. Actions
// missing from the table are denied.
type Table map[Action][]Relation

// RelationsOf returns every relation actor holds toward subj
func RelationsOf(actor models.Actor, subj Subject) []Relation {
	if actor.ID == "" {
		return nil
	}
	rels := []Relation{Anyone}
	if actor.IsAdmin() {
		rels = append(rels, Admin)
	}
	if subj.OwnerID != "" && actor.ID == subj.OwnerID {
		rels = append(rels, Owner)
	}
	if subj.BuyerID != "" && actor.ID == subj.BuyerID {
		rels = append(rels, Buyer)
	}
	if subj.SellerID != "" && actor.ID == subj.SellerID {
		rels = append(rels, Seller)
	}
	return rels
}

// Allows reports whether actor may perform action on subj
func (t Table) Allows(actor models.Actor, action Action, subj Subject) bool {
	allowed, ok := t[action]
	if !ok {
		return false
	}
	for _, held := range RelationsOf(actor, subj) {
		for _, want := range allowed {
			if held == want {
				return true
			}
		}
	}
	return false
}

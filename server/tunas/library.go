package tunas

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/grammar"
	"github.com/dekarrin/relang/internal/regex"
	"github.com/dekarrin/relang/internal/rlio"
	"github.com/dekarrin/relang/internal/stitch"
	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/serr"
)

// CreateLibraryItem validates source against kind and, if it parses cleanly,
// saves it under name for the given owner.
func (svc Service) CreateLibraryItem(ctx context.Context, ownerID uuid.UUID, name string, kind dao.ItemKind, source string) (dao.LibraryItem, error) {
	if _, err := toAutomaton(kind, source); err != nil {
		return dao.LibraryItem{}, serr.New("", err, serr.ErrBadArgument)
	}

	item := dao.LibraryItem{
		OwnerID: ownerID,
		Name:    name,
		Kind:    kind,
		Source:  source,
	}

	created, err := svc.DB.Library().Create(ctx, item)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.LibraryItem{}, serr.New(fmt.Sprintf("item named %q already exists", name), err, serr.ErrAlreadyExists)
		}
		return dao.LibraryItem{}, serr.New("create library item", err, serr.ErrDB)
	}

	return created, nil
}

// GetLibraryItem looks up a single item by ID.
func (svc Service) GetLibraryItem(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	item, err := svc.DB.Library().GetByID(ctx, id)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.LibraryItem{}, serr.New("", serr.ErrNotFound)
		}
		return dao.LibraryItem{}, serr.New("get library item", err, serr.ErrDB)
	}
	return item, nil
}

// GetLibraryItemByName looks up a single item by owner and name.
func (svc Service) GetLibraryItemByName(ctx context.Context, ownerID uuid.UUID, name string) (dao.LibraryItem, error) {
	item, err := svc.DB.Library().GetByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.LibraryItem{}, serr.New("", serr.ErrNotFound)
		}
		return dao.LibraryItem{}, serr.New("get library item", err, serr.ErrDB)
	}
	return item, nil
}

// ListLibraryItems returns every item owned by ownerID.
func (svc Service) ListLibraryItems(ctx context.Context, ownerID uuid.UUID) ([]dao.LibraryItem, error) {
	all, err := svc.DB.Library().GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, serr.New("list library items", err, serr.ErrDB)
	}
	return all, nil
}

// UpdateLibraryItem replaces the source of an existing item, after checking
// it still parses for the item's kind.
func (svc Service) UpdateLibraryItem(ctx context.Context, id uuid.UUID, name, source string) (dao.LibraryItem, error) {
	existing, err := svc.GetLibraryItem(ctx, id)
	if err != nil {
		return dao.LibraryItem{}, err
	}

	if _, err := toAutomaton(existing.Kind, source); err != nil {
		return dao.LibraryItem{}, serr.New("", err, serr.ErrBadArgument)
	}

	existing.Name = name
	existing.Source = source

	updated, err := svc.DB.Library().Update(ctx, id, existing)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.LibraryItem{}, serr.New(fmt.Sprintf("item named %q already exists", name), err, serr.ErrAlreadyExists)
		}
		return dao.LibraryItem{}, serr.New("update library item", err, serr.ErrDB)
	}

	return updated, nil
}

// DeleteLibraryItem removes an item by ID.
func (svc Service) DeleteLibraryItem(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	deleted, err := svc.DB.Library().Delete(ctx, id)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.LibraryItem{}, serr.New("", serr.ErrNotFound)
		}
		return dao.LibraryItem{}, serr.New("delete library item", err, serr.ErrDB)
	}
	return deleted, nil
}

// toAutomaton parses source according to kind and reduces it to a
// *automaton.FiniteAutomaton, the common form every operation works from
// regardless of how the item was originally authored.
func toAutomaton(kind dao.ItemKind, source string) (*automaton.FiniteAutomaton, error) {
	switch kind {
	case dao.KindAutomaton:
		fa, err := rlio.UnmarshalAutomatonJSON([]byte(source))
		if err != nil {
			return nil, err
		}
		return fa, nil
	case dao.KindRegex:
		tree, err := regex.Parse(source)
		if err != nil {
			return nil, err
		}
		return stitch.ToDFA(tree), nil
	case dao.KindGrammar:
		g, err := grammar.Parse(source)
		if err != nil {
			return nil, err
		}
		return g.ToAutomaton(), nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

// OperateRequest describes a single automaton-algebra operation to apply to
// one or two named library items.
type OperateRequest struct {
	// Op is the name of the operation: union, concat, star, reverse,
	// complement, complete, determinize, minimize, equivalent, intersect,
	// difference, evaluate, gensentences, or togrammar.
	Op string

	// Left and Right are the IDs of the operand items. Right is unused by
	// unary operations.
	Left  uuid.UUID
	Right uuid.UUID

	// Sentence is used by "evaluate".
	Sentence string

	// Length is used by "gensentences".
	Length int
}

// OperateResult is the outcome of a call to Operate. Exactly one of Automaton,
// Grammar, Accepted, or Sentences will be populated, depending on the
// operation that produced it.
type OperateResult struct {
	Automaton *automaton.FiniteAutomaton
	Grammar   *grammar.RegularGrammar
	Accepted  *bool
	Sentences []automaton.Sentence
	Equal     *bool
}

// Operate loads the operand item(s) named in req, reduces them to automata,
// applies the requested operation, and returns the result without persisting
// anything new.
func (svc Service) Operate(ctx context.Context, req OperateRequest) (OperateResult, error) {
	left, err := svc.GetLibraryItem(ctx, req.Left)
	if err != nil {
		return OperateResult{}, err
	}
	leftFA, err := toAutomaton(left.Kind, left.Source)
	if err != nil {
		return OperateResult{}, serr.New("left operand", err, serr.ErrBadArgument)
	}

	needsRight := map[string]bool{
		"union": true, "concat": true, "intersect": true, "difference": true, "equivalent": true,
	}

	var rightFA *automaton.FiniteAutomaton
	if needsRight[req.Op] {
		right, err := svc.GetLibraryItem(ctx, req.Right)
		if err != nil {
			return OperateResult{}, err
		}
		rightFA, err = toAutomaton(right.Kind, right.Source)
		if err != nil {
			return OperateResult{}, serr.New("right operand", err, serr.ErrBadArgument)
		}
	}

	switch req.Op {
	case "union":
		return OperateResult{Automaton: automaton.Union(leftFA, rightFA)}, nil
	case "concat":
		return OperateResult{Automaton: automaton.Concatenate(leftFA, rightFA)}, nil
	case "intersect":
		return OperateResult{Automaton: automaton.Intersection(leftFA, rightFA)}, nil
	case "difference":
		return OperateResult{Automaton: automaton.Difference(leftFA, rightFA)}, nil
	case "star":
		return OperateResult{Automaton: automaton.KleeneStar(leftFA)}, nil
	case "reverse":
		return OperateResult{Automaton: automaton.Reverse(leftFA)}, nil
	case "complement":
		return OperateResult{Automaton: automaton.Complement(leftFA)}, nil
	case "complete":
		completed := leftFA.Copy()
		completed.Complete()
		return OperateResult{Automaton: completed}, nil
	case "determinize":
		return OperateResult{Automaton: leftFA.Determinize()}, nil
	case "minimize":
		det := leftFA.Determinize()
		min, err := det.Minimize()
		if err != nil {
			return OperateResult{}, serr.New("minimize", err, serr.ErrBadArgument)
		}
		return OperateResult{Automaton: min}, nil
	case "equivalent":
		eq := automaton.Equivalent(leftFA, rightFA)
		return OperateResult{Equal: &eq}, nil
	case "togrammar":
		return OperateResult{Grammar: grammar.FromAutomaton(leftFA)}, nil
	case "evaluate":
		sentence, err := automaton.NewSentence(req.Sentence)
		if err != nil {
			return OperateResult{}, serr.New("", err, serr.ErrBadArgument)
		}
		accepted := leftFA.Evaluate(sentence)
		return OperateResult{Accepted: &accepted}, nil
	case "gensentences":
		return OperateResult{Sentences: leftFA.GenSentences(req.Length)}, nil
	default:
		return OperateResult{}, serr.New(fmt.Sprintf("unknown operation %q", req.Op), serr.ErrBadArgument)
	}
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/relang/internal/rlio"
	"github.com/dekarrin/relang/server/dao"
	"github.com/dekarrin/relang/server/middle"
	"github.com/dekarrin/relang/server/result"
	"github.com/dekarrin/relang/server/serr"
	"github.com/dekarrin/relang/server/tunas"
)

// LibraryItemModel is the JSON representation of a saved automaton, regex, or
// grammar, as seen through the API.
type LibraryItemModel struct {
	URI      string `json:"uri,omitempty"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

func libraryItemModel(item dao.LibraryItem) LibraryItemModel {
	return LibraryItemModel{
		URI:      PathPrefix + "/library/" + item.ID.String(),
		ID:       item.ID.String(),
		Name:     item.Name,
		Kind:     item.Kind.String(),
		Source:   item.Source,
		Created:  item.Created.Format(time.RFC3339),
		Modified: item.Modified.Format(time.RFC3339),
	}
}

// HTTPListLibraryItems returns a HandlerFunc that lists every item owned by
// the logged-in client.
func (api API) HTTPListLibraryItems() http.HandlerFunc {
	return api.Endpoint(api.epListLibraryItems)
}

func (api API) epListLibraryItems(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	items, err := api.Backend.ListLibraryItems(req.Context(), user.ID)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]LibraryItemModel, len(items))
	for i := range items {
		resp[i] = libraryItemModel(items[i])
	}

	return result.OK(resp, "user '%s' listed library items", user.Username)
}

// HTTPCreateLibraryItem returns a HandlerFunc that saves a new named
// automaton, regex, or grammar under the logged-in client.
func (api API) HTTPCreateLibraryItem() http.HandlerFunc {
	return api.Endpoint(api.epCreateLibraryItem)
}

func (api API) epCreateLibraryItem(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var createItem LibraryItemModel
	if err := parseJSON(req, &createItem); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if createItem.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	kind, err := dao.ParseItemKind(createItem.Kind)
	if err != nil {
		return result.BadRequest("kind: "+err.Error(), "kind: %s", err.Error())
	}

	created, err := api.Backend.CreateLibraryItem(req.Context(), user.ID, createItem.Name, kind, createItem.Source)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict("Item with that name already exists", "item '%s' already exists", createItem.Name)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := libraryItemModel(created)
	return result.Created(resp, "user '%s' created library item '%s'", user.Username, resp.Name)
}

// HTTPGetLibraryItem returns a HandlerFunc that retrieves a single library
// item owned by the logged-in client.
func (api API) HTTPGetLibraryItem() http.HandlerFunc {
	return api.Endpoint(api.epGetLibraryItem)
}

func (api API) epGetLibraryItem(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	item, err := api.Backend.GetLibraryItem(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if item.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get item %s: forbidden", user.Username, user.Role, id.String())
	}

	return result.OK(libraryItemModel(item), "user '%s' got library item '%s'", user.Username, item.Name)
}

// HTTPUpdateLibraryItem returns a HandlerFunc that replaces the name and
// source of an existing library item.
func (api API) HTTPUpdateLibraryItem() http.HandlerFunc {
	return api.Endpoint(api.epUpdateLibraryItem)
}

func (api API) epUpdateLibraryItem(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetLibraryItem(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}
	if existing.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) update item %s: forbidden", user.Username, user.Role, id.String())
	}

	var updateItem LibraryItemModel
	if err := parseJSON(req, &updateItem); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if updateItem.Name == "" {
		updateItem.Name = existing.Name
	}

	updated, err := api.Backend.UpdateLibraryItem(req.Context(), id, updateItem.Name, updateItem.Source)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(libraryItemModel(updated), "user '%s' updated library item '%s'", user.Username, updated.Name)
}

// HTTPDeleteLibraryItem returns a HandlerFunc that deletes a library item.
func (api API) HTTPDeleteLibraryItem() http.HandlerFunc {
	return api.Endpoint(api.epDeleteLibraryItem)
}

func (api API) epDeleteLibraryItem(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	existing, err := api.Backend.GetLibraryItem(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NoContent()
		}
		return result.InternalServerError(err.Error())
	}
	if existing.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) delete item %s: forbidden", user.Username, user.Role, id.String())
	}

	deleted, err := api.Backend.DeleteLibraryItem(req.Context(), id)
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete library item: " + err.Error())
	}

	return result.NoContent("user '%s' deleted library item '%s'", user.Username, deleted.Name)
}

// OperateRequestModel is the JSON body for a request to apply an
// automaton-algebra operation over one or two saved library items.
type OperateRequestModel struct {
	Op       string `json:"op"`
	Left     string `json:"left"`
	Right    string `json:"right,omitempty"`
	Sentence string `json:"sentence,omitempty"`
	Length   int    `json:"length,omitempty"`
}

// OperateResultModel is the JSON response produced by an operate request.
// Exactly one of the fields will be populated, depending on the requested
// operation.
type OperateResultModel struct {
	Automaton string   `json:"automaton,omitempty"`
	Grammar   string   `json:"grammar,omitempty"`
	Accepted  *bool    `json:"accepted,omitempty"`
	Equal     *bool    `json:"equal,omitempty"`
	Sentences []string `json:"sentences,omitempty"`
}

// HTTPOperate returns a HandlerFunc that applies an automaton-algebra
// operation to one or two library items owned by the logged-in client and
// returns the result without persisting it.
func (api API) HTTPOperate() http.HandlerFunc {
	return api.Endpoint(api.epOperate)
}

func (api API) epOperate(req *http.Request) result.Result {
	user := req.Context().Value(middle.AuthUser).(dao.User)

	var opReq OperateRequestModel
	if err := parseJSON(req, &opReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if opReq.Op == "" {
		return result.BadRequest("op: property is empty or missing from request", "empty op")
	}

	leftID, err := uuid.Parse(opReq.Left)
	if err != nil {
		return result.BadRequest("left: not a valid ID", "left: %s", err.Error())
	}

	left, err := api.Backend.GetLibraryItem(req.Context(), leftID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) || errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest("left: no such item", "left: %s", err.Error())
		}
		return result.InternalServerError(err.Error())
	}
	if left.OwnerID != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) operate on item %s: forbidden", user.Username, user.Role, left.ID)
	}

	svcReq := tunas.OperateRequest{
		Op:       opReq.Op,
		Left:     left.ID,
		Sentence: opReq.Sentence,
		Length:   opReq.Length,
	}

	if opReq.Right != "" {
		rightID, err := uuid.Parse(opReq.Right)
		if err != nil {
			return result.BadRequest("right: not a valid ID", "right: %s", err.Error())
		}

		right, err := api.Backend.GetLibraryItem(req.Context(), rightID)
		if err != nil {
			if errors.Is(err, serr.ErrNotFound) || errors.Is(err, serr.ErrBadArgument) {
				return result.BadRequest("right: no such item", "right: %s", err.Error())
			}
			return result.InternalServerError(err.Error())
		}
		if right.OwnerID != user.ID && user.Role != dao.Admin {
			return result.Forbidden("user '%s' (role %s) operate on item %s: forbidden", user.Username, user.Role, right.ID)
		}
		svcReq.Right = right.ID
	}

	opResult, err := api.Backend.Operate(req.Context(), svcReq)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	resp := OperateResultModel{
		Accepted: opResult.Accepted,
		Equal:    opResult.Equal,
	}
	if opResult.Automaton != nil {
		marshaled, err := rlio.MarshalAutomatonJSON(opResult.Automaton)
		if err != nil {
			return result.InternalServerError("marshal automaton: " + err.Error())
		}
		resp.Automaton = string(marshaled)
	}
	if opResult.Grammar != nil {
		resp.Grammar = opResult.Grammar.String()
	}
	if opResult.Sentences != nil {
		resp.Sentences = make([]string, len(opResult.Sentences))
		for i := range opResult.Sentences {
			resp.Sentences[i] = opResult.Sentences[i].String()
		}
	}

	return result.OK(resp, "user '%s' applied op '%s'", user.Username, opReq.Op)
}

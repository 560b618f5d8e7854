package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/session"
	"github.com/matst80/slask-catalog/pkg/types"
)

type queryForm struct {
	Query string `schema:"q"`
}

type userForm struct {
	User string `schema:"user"`
}

func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return common.BadRequest(err)
	}
	if err := types.DecodeForm(dst, r.Form); err != nil {
		return common.BadRequest(err)
	}
	return nil
}

func (ws *WebServer) checkCategory(id types.CategoryId) error {
	if _, ok := ws.categoryIds[id]; !ok {
		return common.BadRequest(fmt.Errorf("unknown category %d", id))
	}
	return nil
}

func (ws *WebServer) respond(r *http.Request, sessionId string, enc jsoncompat.Encoder, state types.FilterState) error {
	items := ws.Index.Apply(state)
	if len(items) == 0 {
		noEmptyResults.Inc()
	}
	if ws.Tracking != nil {
		ws.Tracking.TrackFilter(sessionId, state, len(items), r)
	}
	return enc.Encode(newCatalogResponse(state, items))
}

func (ws *WebServer) update(r *http.Request, sessionId string, enc jsoncompat.Encoder, name string, action session.Action) error {
	noRequests.WithLabelValues(name).Inc()
	state, err := ws.Sessions.Update(r.Context(), sessionId, action)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return ws.respond(r, sessionId, enc, state)
}

func (ws *WebServer) GetUsers(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	return enc.Encode(ws.Users)
}

func (ws *WebServer) GetCategories(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	return enc.Encode(ws.Categories)
}

// Products is the stateless variant, the whole filter state is carried in the
// query string.
func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noRequests.WithLabelValues("products").Inc()
	state, err := types.GetFilterStateFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	for _, id := range state.SelectedCategories() {
		if err := ws.checkCategory(id); err != nil {
			return err
		}
	}
	return ws.respond(r, sessionId, enc, state)
}

func (ws *WebServer) SessionState(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noRequests.WithLabelValues("session").Inc()
	state, err := ws.Sessions.Current(r.Context(), sessionId)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return ws.respond(r, sessionId, enc, state)
}

func (ws *WebServer) SetQuery(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	form := queryForm{}
	if err := decodeForm(r, &form); err != nil {
		return err
	}
	return ws.update(r, sessionId, enc, "query", session.SetQuery(form.Query))
}

func (ws *WebServer) ToggleCategory(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.BadRequest(fmt.Errorf("invalid category id %q", r.PathValue("id")))
	}
	if err := ws.checkCategory(types.CategoryId(id)); err != nil {
		return err
	}
	return ws.update(r, sessionId, enc, "category", session.ToggleCategory(types.CategoryId(id)))
}

func (ws *WebServer) ClearCategories(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return ws.update(r, sessionId, enc, "clear_categories", session.ClearCategories())
}

func (ws *WebServer) SelectUser(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	form := userForm{}
	if err := decodeForm(r, &form); err != nil {
		return err
	}
	return ws.update(r, sessionId, enc, "user", session.SelectUser(form.User))
}

func (ws *WebServer) ToggleSort(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	field, err := types.ParseSortField(r.PathValue("field"))
	if err != nil {
		return common.BadRequest(err)
	}
	return ws.update(r, sessionId, enc, "sort", session.ToggleSort(field))
}

func (ws *WebServer) Reset(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return ws.update(r, sessionId, enc, "reset", session.Reset())
}

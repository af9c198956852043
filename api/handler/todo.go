package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/api/transport"
	"github.com/techgit41/Advanced-Todo-App/pkg/httpcontext"
	"github.com/techgit41/Advanced-Todo-App/repository"
	todoUC "github.com/techgit41/Advanced-Todo-App/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	uc *todoUC.UseCase
}

func NewTodoHandler(uc *todoUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's todos, filtered and sorted
// @Tags todos
// @Router /api/todos [get]
func (h *TodoHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todos, err := h.uc.List(stdCtx, userID, filterFromQuery(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, todos)
}

// @Summary Aggregate counts over the caller's todos
// @Tags todos
// @Router /api/todos/stats [get]
func (h *TodoHandler) Stats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Stats(stdCtx, userID)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Create a todo owned by the caller
// @Tags todos
// @Router /api/todos [post]
func (h *TodoHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.CreateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadPayload(ctx)
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.respondValidation(ctx, map[string]string{"dueDate": "due date must be RFC 3339"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userID, input)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Partially update an owned todo
// @Tags todos
// @Router /api/todos/{id} [put]
func (h *TodoHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := todoID(ctx)
	if !ok {
		h.respondBadPayload(ctx)
		return
	}

	var req transport.UpdateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadPayload(ctx)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		h.respondValidation(ctx, map[string]string{"dueDate": "due date must be RFC 3339"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, userID, id, patch)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete an owned todo
// @Tags todos
// @Router /api/todos/{id} [delete]
func (h *TodoHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := todoID(ctx)
	if !ok {
		h.respondBadPayload(ctx)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, userID, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Envelope{Success: true, Message: "todo deleted successfully"})
}

func filterFromQuery(ctx *fasthttp.RequestCtx) repository.TodoFilter {
	args := ctx.QueryArgs()
	filter := repository.TodoFilter{
		Category:  string(args.Peek("category")),
		Priority:  string(args.Peek("priority")),
		Search:    string(args.Peek("search")),
		SortBy:    string(args.Peek("sortBy")),
		SortOrder: string(args.Peek("sortOrder")),
	}
	if args.Has("completed") {
		completed := string(args.Peek("completed")) == "true"
		filter.Completed = &completed
	}
	return filter
}

func todoID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	return id, id != ""
}

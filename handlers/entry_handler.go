package handlers

import (
	"net/http"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

// EntryHandler 日记相关接口
type EntryHandler struct {
	entries *services.EntryService
}

func NewEntryHandler(entries *services.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Create godoc
// @Summary 创建日记
// @Description 创建一篇新日记，标题和正文入库前会经过清洗流水线
// @Tags 日记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateEntryRequest true "日记内容"
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/entries [post]
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !utils.ValidateRequiredString(w, "title", req.Title) ||
		!utils.ValidateRequiredString(w, "context", req.Context) {
		return
	}

	entry, err := h.entries.CreateEntry(UserIDFromContext(r), req.Title, req.Context)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// Append godoc
// @Summary 追加日记内容
// @Description 向已有日记追加正文，已缓存的分析结果会失效并在下次访问时重算
// @Tags 日记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Param request body models.AppendEntryRequest true "追加内容"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在"
// @Router /api/entries/{id}/append [post]
func (h *EntryHandler) Append(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}

	var req models.AppendEntryRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !utils.ValidateRequiredString(w, "context", req.Context) {
		return
	}

	entry, err := h.entries.AppendContext(entryID, UserIDFromContext(r), req.Context)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// Get godoc
// @Summary 获取单篇日记
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在"
// @Router /api/entries/{id} [get]
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}

	entry, err := h.entries.GetEntry(entryID, UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entry)
}

// List godoc
// @Summary 获取日记列表
// @Description 获取当前用户的全部日记，按创建时间升序
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/entries [get]
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListEntries(UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, entries)
}

// Titles godoc
// @Summary 获取日记标题列表
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/entries/titles [get]
func (h *EntryHandler) Titles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.entries.ListTitles(UserIDFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, titles)
}

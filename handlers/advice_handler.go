package handlers

import (
	"net/http"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

// AdviceHandler 建议生成接口
type AdviceHandler struct {
	advice *services.AdviceService
}

func NewAdviceHandler(advice *services.AdviceService) *AdviceHandler {
	return &AdviceHandler{advice: advice}
}

// Entry godoc
// @Summary 针对单篇日记生成建议
// @Description 根据日记的情绪、性格与事件分析结果生成建议文本
// @Tags 建议
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在或模型抽取失败"
// @Router /api/advice/entries/{id} [get]
func (h *AdviceHandler) Entry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}
	advice, err := h.advice.AdviseEntry(r.Context(), UserIDFromContext(r), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"advice": advice})
}

// Week godoc
// @Summary 生成周建议
// @Description 聚合指定ISO周的分析结果生成建议，生成过的周建议落库复用
// @Tags 建议
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WeekRequest true "周与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "该时间段没有日记"
// @Router /api/advice/week [post]
func (h *AdviceHandler) Week(w http.ResponseWriter, r *http.Request) {
	var req models.WeekRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateWeekRequest(w, &req) {
		return
	}
	advice, err := h.advice.AdviseWeek(r.Context(), UserIDFromContext(r), req.Week, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"advice": advice})
}

// Month godoc
// @Summary 生成月建议
// @Description 聚合指定月份的分析结果实时生成建议
// @Tags 建议
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MonthRequest true "月份与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "该时间段没有日记"
// @Router /api/advice/month [post]
func (h *AdviceHandler) Month(w http.ResponseWriter, r *http.Request) {
	var req models.MonthRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateMonthRequest(w, &req) {
		return
	}
	advice, err := h.advice.AdviseMonth(r.Context(), UserIDFromContext(r), req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"advice": advice})
}

// Year godoc
// @Summary 生成年建议
// @Description 聚合指定年份的分析结果实时生成建议
// @Tags 建议
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.YearRequest true "年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "该时间段没有日记"
// @Router /api/advice/year [post]
func (h *AdviceHandler) Year(w http.ResponseWriter, r *http.Request) {
	var req models.YearRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateYearRequest(w, &req) {
		return
	}
	advice, err := h.advice.AdviseYear(r.Context(), UserIDFromContext(r), req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"advice": advice})
}

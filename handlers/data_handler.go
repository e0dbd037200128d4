package handlers

import (
	"net/http"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

// DataHandler 分析数据接口：单篇日记的富化结果与周/月/年时间聚合
type DataHandler struct {
	analysis *services.AnalysisService
}

func NewDataHandler(analysis *services.AnalysisService) *DataHandler {
	return &DataHandler{analysis: analysis}
}

// =====================
// 单篇日记
// =====================

// EntryEmotions godoc
// @Summary 获取单篇日记的情绪
// @Description 返回日记的六维情绪标记，首次访问时调用模型计算并缓存
// @Tags 分析数据
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在或模型抽取失败"
// @Router /api/data/entries/{id}/emotions [get]
func (h *DataHandler) EntryEmotions(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}
	emotion, err := h.analysis.EntryEmotion(r.Context(), UserIDFromContext(r), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"entry_id": emotion.EntryID,
		"emotions": emotion.Flags(),
	})
}

// EntryCharacters godoc
// @Summary 获取单篇日记的性格画像
// @Description 返回五维性格得分与推导出的4字母类型，首次访问时调用模型计算并缓存
// @Tags 分析数据
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在或模型抽取失败"
// @Router /api/data/entries/{id}/characters [get]
func (h *DataHandler) EntryCharacters(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}
	trait, err := h.analysis.EntryCharacter(r.Context(), UserIDFromContext(r), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, trait.AsMap())
}

// EntryEvents godoc
// @Summary 获取单篇日记的事件
// @Description 返回从日记文本中抽取的结构化事件列表，首次访问时调用模型计算并缓存
// @Tags 分析数据
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在或模型抽取失败"
// @Router /api/data/entries/{id}/events [get]
func (h *DataHandler) EntryEvents(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}
	events, err := h.analysis.EntryEvents(r.Context(), UserIDFromContext(r), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, events)
}

// EntrySummary godoc
// @Summary 获取单篇日记的分析摘要
// @Description 返回日记的情绪与性格组合视图，事件不参与摘要
// @Tags 分析数据
// @Produce json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "日记不存在或模型抽取失败"
// @Router /api/data/entries/{id}/summary [get]
func (h *DataHandler) EntrySummary(w http.ResponseWriter, r *http.Request) {
	entryID, ok := parseEntryID(w, r)
	if !ok {
		return
	}
	summary, err := h.analysis.EntrySummary(r.Context(), UserIDFromContext(r), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, summary)
}

// =====================
// 周粒度
// =====================

// WeekEmotions godoc
// @Summary 按周聚合情绪
// @Description 返回指定ISO周内每个星期几(1=周一..7=周日)的情绪标签集合，空桶为[]
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WeekRequest true "周与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/week/emotions [post]
func (h *DataHandler) WeekEmotions(w http.ResponseWriter, r *http.Request) {
	var req models.WeekRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateWeekRequest(w, &req) {
		return
	}
	result, err := h.analysis.WeekEmotions(r.Context(), UserIDFromContext(r), req.Week, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// WeekCharacters godoc
// @Summary 按周聚合性格画像
// @Description 返回指定ISO周内每个星期几的性格画像，同日多篇日记时最晚的一篇生效，空桶为{}
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WeekRequest true "周与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/week/characters [post]
func (h *DataHandler) WeekCharacters(w http.ResponseWriter, r *http.Request) {
	var req models.WeekRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateWeekRequest(w, &req) {
		return
	}
	result, err := h.analysis.WeekCharacters(r.Context(), UserIDFromContext(r), req.Week, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// WeekEvents godoc
// @Summary 按周聚合事件
// @Description 返回指定ISO周内每个星期几的事件列表，空桶为[]
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WeekRequest true "周与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/week/events [post]
func (h *DataHandler) WeekEvents(w http.ResponseWriter, r *http.Request) {
	var req models.WeekRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateWeekRequest(w, &req) {
		return
	}
	result, err := h.analysis.WeekEvents(r.Context(), UserIDFromContext(r), req.Week, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// WeekSummary godoc
// @Summary 按周聚合摘要
// @Description 返回指定ISO周的情绪与性格聚合（事件不参与摘要）
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.WeekRequest true "周与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/week/summary [post]
func (h *DataHandler) WeekSummary(w http.ResponseWriter, r *http.Request) {
	var req models.WeekRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateWeekRequest(w, &req) {
		return
	}
	result, err := h.analysis.WeekSummary(r.Context(), UserIDFromContext(r), req.Week, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// =====================
// 月粒度
// =====================

// MonthEmotions godoc
// @Summary 按月聚合情绪
// @Description 返回指定月份每个"几号"(1..31)的情绪标签集合，空桶为[]
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MonthRequest true "月份与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/month/emotions [post]
func (h *DataHandler) MonthEmotions(w http.ResponseWriter, r *http.Request) {
	var req models.MonthRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateMonthRequest(w, &req) {
		return
	}
	result, err := h.analysis.MonthEmotions(r.Context(), UserIDFromContext(r), req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// MonthCharacters godoc
// @Summary 按月聚合性格画像
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MonthRequest true "月份与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/month/characters [post]
func (h *DataHandler) MonthCharacters(w http.ResponseWriter, r *http.Request) {
	var req models.MonthRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateMonthRequest(w, &req) {
		return
	}
	result, err := h.analysis.MonthCharacters(r.Context(), UserIDFromContext(r), req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// MonthEvents godoc
// @Summary 按月聚合事件
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MonthRequest true "月份与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/month/events [post]
func (h *DataHandler) MonthEvents(w http.ResponseWriter, r *http.Request) {
	var req models.MonthRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateMonthRequest(w, &req) {
		return
	}
	result, err := h.analysis.MonthEvents(r.Context(), UserIDFromContext(r), req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// MonthSummary godoc
// @Summary 按月聚合摘要
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MonthRequest true "月份与年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/month/summary [post]
func (h *DataHandler) MonthSummary(w http.ResponseWriter, r *http.Request) {
	var req models.MonthRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateMonthRequest(w, &req) {
		return
	}
	result, err := h.analysis.MonthSummary(r.Context(), UserIDFromContext(r), req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// =====================
// 年粒度
// =====================

// YearEmotions godoc
// @Summary 按年聚合情绪
// @Description 返回指定年份{1..12: {1..31: [...]}}的稠密情绪结构
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.YearRequest true "年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/year/emotions [post]
func (h *DataHandler) YearEmotions(w http.ResponseWriter, r *http.Request) {
	var req models.YearRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateYearRequest(w, &req) {
		return
	}
	result, err := h.analysis.YearEmotions(r.Context(), UserIDFromContext(r), req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// YearCharacters godoc
// @Summary 按年聚合性格画像
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.YearRequest true "年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/year/characters [post]
func (h *DataHandler) YearCharacters(w http.ResponseWriter, r *http.Request) {
	var req models.YearRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateYearRequest(w, &req) {
		return
	}
	result, err := h.analysis.YearCharacters(r.Context(), UserIDFromContext(r), req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// YearEvents godoc
// @Summary 按年聚合事件
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.YearRequest true "年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/year/events [post]
func (h *DataHandler) YearEvents(w http.ResponseWriter, r *http.Request) {
	var req models.YearRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateYearRequest(w, &req) {
		return
	}
	result, err := h.analysis.YearEvents(r.Context(), UserIDFromContext(r), req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

// YearSummary godoc
// @Summary 按年聚合摘要
// @Tags 分析数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.YearRequest true "年份"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 200 {object} models.APIResponse "时间段早于账号创建时间"
// @Router /api/data/year/summary [post]
func (h *DataHandler) YearSummary(w http.ResponseWriter, r *http.Request) {
	var req models.YearRequest
	if !utils.DecodeJSONBody(w, r, &req) || !validateYearRequest(w, &req) {
		return
	}
	result, err := h.analysis.YearSummary(r.Context(), UserIDFromContext(r), req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, result)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"digital_diary/models"
	"digital_diary/services"
	"digital_diary/utils"
)

// writeServiceError 把服务层错误映射为响应码
func writeServiceError(w http.ResponseWriter, err error) {
	code := models.CodeServerError
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		code = models.CodeUserNotFound
	case errors.Is(err, services.ErrEntryNotFound):
		code = models.CodeEntryNotFound
	case errors.Is(err, services.ErrInvalidPeriod):
		code = models.CodeInvalidPeriod
	case errors.Is(err, services.ErrUserExists):
		code = models.CodeUserExists
	case errors.Is(err, services.ErrWrongPassword):
		code = models.CodeWrongPassword
	case errors.Is(err, services.ErrInvalidToken):
		code = models.CodeInvalidToken
	case errors.Is(err, services.ErrNoAdviceData):
		code = models.CodeNoAdviceData
	case errors.Is(err, services.ErrExtraction):
		code = models.CodeExtractionError
	}
	utils.WriteCustomErrorResponse(w, code, err.Error(), map[string]interface{}{})
}

// parseEntryID 解析路径中的日记ID参数
func parseEntryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"param": "id"})
		return 0, false
	}
	return id, true
}

// validateWeekRequest 周参数范围校验
func validateWeekRequest(w http.ResponseWriter, req *models.WeekRequest) bool {
	if req.Week < 1 || req.Week > 53 || req.Year < 1 {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"week": req.Week, "year": req.Year})
		return false
	}
	return true
}

// validateMonthRequest 月参数范围校验
func validateMonthRequest(w http.ResponseWriter, req *models.MonthRequest) bool {
	if req.Month < 1 || req.Month > 12 || req.Year < 1 {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"month": req.Month, "year": req.Year})
		return false
	}
	return true
}

// validateYearRequest 年参数范围校验
func validateYearRequest(w http.ResponseWriter, req *models.YearRequest) bool {
	if req.Year < 1 {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{"year": req.Year})
		return false
	}
	return true
}

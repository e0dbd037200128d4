package handlers

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"digital_diary/config"
	_ "digital_diary/docs" // 导入 swagger 文档
	"digital_diary/services"
	"digital_diary/utils"
)

// Deps 路由层依赖，由main构建一次后注入
type Deps struct {
	Config   *config.Config
	Tokens   *utils.TokenManager
	Users    *services.UserService
	Entries  *services.EntryService
	Analysis *services.AnalysisService
	Advice   *services.AdviceService
}

func RegisterRoutes(r *chi.Mux, deps *Deps) {
	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	userHandler := NewUserHandler(deps.Users)
	entryHandler := NewEntryHandler(deps.Entries)
	dataHandler := NewDataHandler(deps.Analysis)
	adviceHandler := NewAdviceHandler(deps.Advice)

	// 无需鉴权的账号接口
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/refresh", userHandler.Refresh)

	// 鉴权接口
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Tokens, deps.Users))

		r.Post("/api/user/logout", userHandler.Logout)
		r.Get("/api/user/info", userHandler.Info)

		r.Post("/api/entries", entryHandler.Create)
		r.Get("/api/entries", entryHandler.List)
		r.Get("/api/entries/titles", entryHandler.Titles)
		r.Get("/api/entries/{id}", entryHandler.Get)
		r.Post("/api/entries/{id}/append", entryHandler.Append)

		r.Get("/api/data/entries/{id}/emotions", dataHandler.EntryEmotions)
		r.Get("/api/data/entries/{id}/characters", dataHandler.EntryCharacters)
		r.Get("/api/data/entries/{id}/events", dataHandler.EntryEvents)
		r.Get("/api/data/entries/{id}/summary", dataHandler.EntrySummary)

		r.Post("/api/data/week/emotions", dataHandler.WeekEmotions)
		r.Post("/api/data/week/characters", dataHandler.WeekCharacters)
		r.Post("/api/data/week/events", dataHandler.WeekEvents)
		r.Post("/api/data/week/summary", dataHandler.WeekSummary)

		r.Post("/api/data/month/emotions", dataHandler.MonthEmotions)
		r.Post("/api/data/month/characters", dataHandler.MonthCharacters)
		r.Post("/api/data/month/events", dataHandler.MonthEvents)
		r.Post("/api/data/month/summary", dataHandler.MonthSummary)

		r.Post("/api/data/year/emotions", dataHandler.YearEmotions)
		r.Post("/api/data/year/characters", dataHandler.YearCharacters)
		r.Post("/api/data/year/events", dataHandler.YearEvents)
		r.Post("/api/data/year/summary", dataHandler.YearSummary)

		r.Get("/api/advice/entries/{id}", adviceHandler.Entry)
		r.Post("/api/advice/week", adviceHandler.Week)
		r.Post("/api/advice/month", adviceHandler.Month)
		r.Post("/api/advice/year", adviceHandler.Year)
	})
}

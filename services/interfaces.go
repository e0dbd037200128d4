package services

import (
	"context"
	"time"

	"digital_diary/models"
)

// 服务层依赖的存储接口，由repository包的具体类型实现。
// 面向接口便于单元测试时替换为内存实现。

type UserStore interface {
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UsernameOrEmailExists(username, email string) (bool, error)
	CreateUser(u *models.User) (int64, error)
	UpdateLastLogout(id int64, t time.Time) error
}

type EntryStore interface {
	GetEntryByID(entryID, userID int64) (*models.Entry, error)
	ListEntriesByUser(userID int64) ([]models.Entry, error)
	ListEntriesByDateRange(userID int64, start, end time.Time) ([]models.Entry, error)
	ListEntryTitles(userID int64) ([]string, error)
	CreateEntry(e *models.Entry) (int64, error)
	AppendEntryContext(entryID, userID int64, addition string) error
	ListUnenrichedEntries(lookbackDays int) ([]models.Entry, error)
}

type EnrichmentStore interface {
	GetEmotionByEntry(entryID int64) (*models.Emotion, error)
	SaveEmotion(e *models.Emotion) (*models.Emotion, error)
	GetCharacterByEntry(entryID int64) (*models.CharacterTrait, error)
	SaveCharacter(c *models.CharacterTrait) (*models.CharacterTrait, error)
	ListEventsByEntry(entryID int64) ([]models.Event, error)
	SaveEvents(entryID int64, events []models.Event) ([]models.Event, error)
}

type AdviceStore interface {
	GetWeekAdvice(userID int64, week, year int) (*models.Advice, error)
	InsertAdvice(a *models.Advice) (int64, error)
}

// Enricher 按需富化能力，时间聚合器和建议服务依赖它
type Enricher interface {
	GetEmotion(ctx context.Context, entry *models.Entry) (*models.Emotion, error)
	GetCharacter(ctx context.Context, entry *models.Entry) (*models.CharacterTrait, error)
	GetEvents(ctx context.Context, entry *models.Entry) ([]models.Event, error)
}

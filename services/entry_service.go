package services

import (
	"errors"
	"fmt"

	"digital_diary/logger"
	"digital_diary/models"
	"digital_diary/repository"
	"digital_diary/utils"
)

// EntryService 日记的创建、追加与查询
type EntryService struct {
	entries   EntryStore
	sanitizer *Sanitizer
}

func NewEntryService(entries EntryStore, sanitizer *Sanitizer) *EntryService {
	return &EntryService{entries: entries, sanitizer: sanitizer}
}

// CreateEntry 清洗标题和正文后落库
func (s *EntryService) CreateEntry(userID int64, title, context string) (*models.Entry, error) {
	entry := &models.Entry{
		UserID:  userID,
		Title:   s.sanitizer.Sanitize(title),
		Context: s.sanitizer.Sanitize(context),
	}

	id, err := s.entries.CreateEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("创建日记失败: %w", err)
	}

	logger.Info("日记创建成功", "user_id", userID, "entry_id", id)
	return s.GetEntry(id, userID)
}

// AppendContext 向日记追加内容。
// 正文变了，已缓存的富化结果同事务内一并失效，下次访问时重新抽取。
func (s *EntryService) AppendContext(entryID, userID int64, addition string) (*models.Entry, error) {
	addition = s.sanitizer.Sanitize(addition)
	if err := s.entries.AppendEntryContext(entryID, userID, "\n"+addition); err != nil {
		if errors.Is(err, repository.ErrNoSuchEntry) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("追加日记内容失败: %w", err)
	}

	logger.Info("日记追加内容，富化缓存已失效", "user_id", userID, "entry_id", entryID)
	return s.GetEntry(entryID, userID)
}

func (s *EntryService) GetEntry(entryID, userID int64) (*models.Entry, error) {
	entry, err := s.entries.GetEntryByID(entryID, userID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return entry, nil
}

func (s *EntryService) ListEntries(userID int64) ([]models.Entry, error) {
	entries, err := s.entries.ListEntriesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("查询日记列表失败: %w", err)
	}
	return entries, nil
}

func (s *EntryService) ListTitles(userID int64) ([]string, error) {
	titles, err := s.entries.ListEntryTitles(userID)
	if err != nil {
		return nil, fmt.Errorf("查询日记标题失败: %w", err)
	}
	return titles, nil
}

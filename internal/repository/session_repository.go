package repository

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/util"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.AssessmentSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrInvalidSession
	}
	return &session, err
}

// Delete removes a session that never reached the active state, together
// with any items already written for it.
func (r *SessionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&model.CodingProblem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.AssessmentSession{}).Error
	})
}

// ActivateWithQuestions stores the generated question set and flips the
// session to active in one transaction, so a client never observes an
// active session with a partial item set.
func (r *SessionRepository) ActivateWithQuestions(sessionID string, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		res := tx.Model(&model.AssessmentSession{}).
			Where("id = ? AND status = ?", sessionID, model.StatusPending).
			Update("status", model.StatusActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInvalidSession
		}
		return nil
	})
}

func (r *SessionRepository) ActivateWithProblems(sessionID string, problems []model.CodingProblem) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(problems) > 0 {
			if err := tx.Create(&problems).Error; err != nil {
				return err
			}
		}
		res := tx.Model(&model.AssessmentSession{}).
			Where("id = ? AND status = ?", sessionID, model.StatusPending).
			Update("status", model.StatusActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInvalidSession
		}
		return nil
	})
}

func (r *SessionRepository) ListQuestions(sessionID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("session_id = ?", sessionID).Order("id").Find(&questions).Error
	return questions, err
}

func (r *SessionRepository) ListProblems(sessionID string) ([]model.CodingProblem, error) {
	var problems []model.CodingProblem
	err := r.DB.Where("session_id = ?", sessionID).Order("id").Find(&problems).Error
	return problems, err
}

// Finalize records the terminal status and the result document atomically.
// The status guard makes the first finalize win; any later attempt sees
// zero affected rows and gets ErrSessionFinalized, leaving the stored
// result untouched.
func (r *SessionRepository) Finalize(sessionID string, status model.SessionStatus, result *model.SessionResult) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AssessmentSession{}).
			Where("id = ? AND status = ?", sessionID, model.StatusActive).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSessionFinalized
		}
		return tx.Create(result).Error
	})
}

func (r *SessionRepository) FindResult(sessionID string) (*model.SessionResult, error) {
	var result model.SessionResult
	err := r.DB.Where("session_id = ? AND doc_key = ?", sessionID, model.ResultDocKey).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrResultNotFound
	}
	return &result, err
}

// ListSessions returns a page of sessions for the admin view, newest first.
func (r *SessionRepository) ListSessions(userID uint, page, pageSize int) ([]model.AssessmentSession, int64, error) {
	var sessions []model.AssessmentSession
	var total int64

	query := r.DB.Model(&model.AssessmentSession{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}

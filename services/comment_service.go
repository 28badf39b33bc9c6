package services

import (
	"errors"
	"strings"

	"github.com/poliscope/api-go/models"
	"github.com/poliscope/api-go/utils"
	"gorm.io/gorm"
)

// CommentService manages the threaded comment tree under statements:
// top-level comments and their direct replies, plus like and report
// bookkeeping through the reaction ledger and counter sync.
type CommentService struct {
	DB        *gorm.DB
	reactions *ReactionService
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db, reactions: NewReactionService(db)}
}

// CommentView is a comment annotated for the requesting identity.
type CommentView struct {
	models.Comment
	IsLiked bool `json:"is_liked"`
	IsOwn   bool `json:"is_own"`
}

var validReportReasons = map[string]bool{
	"spam":           true,
	"hate_speech":    true,
	"inappropriate":  true,
	"misinformation": true,
	"other":          true,
}

// Create posts a comment on a published statement. A reply's parent must
// belong to the same statement.
func (cs *CommentService) Create(actor *utils.UserClaims, statementID uint, content string, parentID *uint) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalid
	}

	var statement models.Statement
	if err := cs.DB.First(&statement, statementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if statement.Status != models.StatementPublished {
		return nil, ErrNotFound
	}

	if parentID != nil {
		var parent models.Comment
		if err := cs.DB.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.StatementID != statementID {
			return nil, ErrConflict
		}
	}

	comment := models.Comment{
		UserID:      actor.UserID,
		StatementID: statementID,
		ParentID:    parentID,
		Content:     content,
		Status:      models.CommentPublished,
	}

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		activity := models.UserActivity{
			UserID:       actor.UserID,
			ActivityType: "comment",
			TargetType:   models.TargetStatement,
			TargetID:     statementID,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		if parentID != nil {
			if err := syncRepliesCount(tx, *parentID); err != nil {
				return err
			}
		}
		return syncCommentsCount(tx, statementID)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns top-level comments of a statement when parentID is nil, or
// the direct replies of parentID otherwise. It never flattens the tree.
// Listing replies of a comment that no longer exists yields an empty page.
func (cs *CommentService) List(statementID uint, parentID *uint, sort string, skip, limit int, viewer *utils.UserClaims) ([]CommentView, int64, error) {
	order, err := commentOrder(sort)
	if err != nil {
		return nil, 0, err
	}
	skip, limit = normalizePage(skip, limit)

	query := cs.DB.Model(&models.Comment{}).
		Where("statement_id = ? AND status = ?", statementID, models.CommentPublished)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err = query.Preload("User").
		Order(order).
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	views, err := cs.annotate(comments, viewer)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Replies lists the direct replies of a comment across whatever statement
// it belongs to.
func (cs *CommentService) Replies(commentID uint, sort string, skip, limit int, viewer *utils.UserClaims) ([]CommentView, int64, error) {
	order, err := commentOrder(sort)
	if err != nil {
		return nil, 0, err
	}
	skip, limit = normalizePage(skip, limit)

	query := cs.DB.Model(&models.Comment{}).
		Where("parent_id = ? AND status = ?", commentID, models.CommentPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err = query.Preload("User").
		Order(order).
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	views, err := cs.annotate(comments, viewer)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ByUser pages through a user's own published comments, newest first.
func (cs *CommentService) ByUser(userID uint, skip, limit int) ([]CommentView, int64, error) {
	skip, limit = normalizePage(skip, limit)

	query := cs.DB.Model(&models.Comment{}).
		Where("user_id = ? AND status = ?", userID, models.CommentPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, CommentView{Comment: comment, IsOwn: true})
	}
	return views, total, nil
}

func (cs *CommentService) Get(id uint, viewer *utils.UserClaims) (*CommentView, error) {
	var comment models.Comment
	err := cs.DB.Preload("User").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.Status == models.CommentDeleted {
		return nil, ErrNotFound
	}

	view := CommentView{Comment: comment}
	if viewer != nil {
		liked, err := cs.reactions.IsLiked(viewer.UserID, models.TargetComment, comment.ID)
		if err != nil {
			return nil, err
		}
		view.IsLiked = liked
		view.IsOwn = comment.UserID == viewer.UserID
	}
	return &view, nil
}

// Update rewrites a comment's body. Only the author or a moderator may
// update; anyone else gets ErrForbidden.
func (cs *CommentService) Update(actor *utils.UserClaims, id uint, content string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalid
	}

	var comment models.Comment
	if err := cs.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != actor.UserID && !actor.IsModerator() {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := cs.DB.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment (soft delete, so reads exclude it) and resyncs
// the parent's replies_count and the statement's comments_count in the
// same transaction.
func (cs *CommentService) Delete(actor *utils.UserClaims, id uint) error {
	if actor == nil {
		return ErrUnauthorized
	}

	var comment models.Comment
	if err := cs.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != actor.UserID && !actor.IsModerator() {
		return ErrForbidden
	}

	return cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		if comment.ParentID != nil {
			if err := syncRepliesCount(tx, *comment.ParentID); err != nil {
				return err
			}
		}
		return syncCommentsCount(tx, comment.StatementID)
	})
}

// Report files a manual report against a comment. A second report by the
// same user is a successful no-op.
func (cs *CommentService) Report(actor *utils.UserClaims, commentID uint, reason, details string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	reason = strings.ToLower(strings.TrimSpace(reason))
	if !validReportReasons[reason] {
		return ErrInvalid
	}

	var n int64
	if err := cs.DB.Model(&models.Comment{}).Where("id = ?", commentID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.CommentReport
		result := tx.Where("comment_id = ? AND reporter_user_id = ?", commentID, actor.UserID).
			First(&existing)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		report := models.CommentReport{
			CommentID:      commentID,
			ReporterUserID: actor.UserID,
			Reason:         reason,
			Details:        details,
			Status:         models.ReportPending,
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return syncReportsCount(tx, commentID)
	})
	if err != nil {
		// A concurrent identical report can win the insert; Postgres
		// aborts the transaction on the constraint violation, so the
		// re-check runs on a fresh session.
		var raced models.CommentReport
		recheck := cs.DB.Where("comment_id = ? AND reporter_user_id = ?", commentID, actor.UserID).
			First(&raced)
		if recheck.Error != nil {
			return err
		}
	}
	return nil
}

func (cs *CommentService) annotate(comments []models.Comment, viewer *utils.UserClaims) ([]CommentView, error) {
	views := make([]CommentView, 0, len(comments))
	var liked map[uint]bool
	if viewer != nil && len(comments) > 0 {
		ids := make([]uint, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		var err error
		liked, err = cs.reactions.LikedSet(viewer.UserID, models.TargetComment, ids)
		if err != nil {
			return nil, err
		}
	}
	for _, c := range comments {
		view := CommentView{Comment: c}
		if viewer != nil {
			view.IsLiked = liked[c.ID]
			view.IsOwn = c.UserID == viewer.UserID
		}
		views = append(views, view)
	}
	return views, nil
}

func commentOrder(sort string) (string, error) {
	switch sort {
	case "", "newest":
		return "created_at DESC", nil
	case "oldest":
		return "created_at ASC", nil
	case "likes":
		return "likes_count DESC", nil
	default:
		return "", ErrInvalid
	}
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}

package service

import "course-choose-api/internal/domain"

// AuthorizeUpdate 管理员或本人可改
func AuthorizeUpdate(actor *domain.User, targetID uint) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.IsAdministrator() || actor.ID == targetID {
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeDelete 必须同时是管理员且是本人
func AuthorizeDelete(actor *domain.User, targetID uint) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.IsAdministrator() && actor.ID == targetID {
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeOwner 记录的创建者或管理员（课程等业务表）
func AuthorizeOwner(actor *domain.User, ownerID uint) error {
	return AuthorizeUpdate(actor, ownerID)
}

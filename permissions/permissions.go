// Package permissions holds the access predicates applied by the controllers.
//
// HasPermission is checked once per request against the collection.
// HasObjectPermission is checked against each target object and receives the
// id of the user that owns it.
package permissions

import (
	"net/http"

	"github.com/snap-point/social-api/models"
)

// Permission is evaluated with a nil user for anonymous requests.
type Permission interface {
	HasPermission(method string, user *models.User) bool
	HasObjectPermission(method string, user *models.User, ownerID uint) bool
}

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func authenticated(user *models.User) bool {
	return user != nil && user.IsActive
}

func staff(user *models.User) bool {
	return authenticated(user) && user.IsStaff
}

func owns(user *models.User, ownerID uint) bool {
	return authenticated(user) && user.ID == ownerID
}

// ReadOnly grants safe methods to everyone and denies all writes.
type ReadOnly struct{}

func (ReadOnly) HasPermission(method string, _ *models.User) bool {
	return IsSafeMethod(method)
}

func (ReadOnly) HasObjectPermission(method string, _ *models.User, _ uint) bool {
	return IsSafeMethod(method)
}

type IsAuthenticated struct{}

func (IsAuthenticated) HasPermission(_ string, user *models.User) bool {
	return authenticated(user)
}

func (IsAuthenticated) HasObjectPermission(_ string, user *models.User, _ uint) bool {
	return authenticated(user)
}

type IsAuthenticatedOrReadOnly struct{}

func (IsAuthenticatedOrReadOnly) HasPermission(method string, user *models.User) bool {
	return IsSafeMethod(method) || authenticated(user)
}

func (IsAuthenticatedOrReadOnly) HasObjectPermission(method string, user *models.User, _ uint) bool {
	return IsSafeMethod(method) || authenticated(user)
}

// IsAdminUser grants staff accounts only.
type IsAdminUser struct{}

func (IsAdminUser) HasPermission(_ string, user *models.User) bool {
	return staff(user)
}

func (IsAdminUser) HasObjectPermission(_ string, user *models.User, _ uint) bool {
	return staff(user)
}

// IsCreatorOrReadOnly lets anyone read and only the owner write.
type IsCreatorOrReadOnly struct{}

func (IsCreatorOrReadOnly) HasPermission(string, *models.User) bool { return true }

func (IsCreatorOrReadOnly) HasObjectPermission(method string, user *models.User, ownerID uint) bool {
	return IsSafeMethod(method) || owns(user, ownerID)
}

// IsCreatorOrIsAdmin lets anyone read and the owner or a staff member write.
type IsCreatorOrIsAdmin struct{}

func (IsCreatorOrIsAdmin) HasPermission(string, *models.User) bool { return true }

func (IsCreatorOrIsAdmin) HasObjectPermission(method string, user *models.User, ownerID uint) bool {
	return IsSafeMethod(method) || owns(user, ownerID) || staff(user)
}

// All combines permissions; each must grant.
type All []Permission

func (a All) HasPermission(method string, user *models.User) bool {
	for _, p := range a {
		if !p.HasPermission(method, user) {
			return false
		}
	}
	return true
}

func (a All) HasObjectPermission(method string, user *models.User, ownerID uint) bool {
	for _, p := range a {
		if !p.HasObjectPermission(method, user, ownerID) {
			return false
		}
	}
	return true
}

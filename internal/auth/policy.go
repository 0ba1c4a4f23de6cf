package auth

import "github.com/task-manager/internal/model"

// CanAccess is the single ownership rule for reading, updating and deleting
// a task: admins may touch anything, everyone else only what they own. Every
// resource operation goes through this function after the existence check,
// so a missing resource is reported as not found, never as forbidden.
func CanAccess(callerID int64, callerRole model.Role, ownerID int64) bool {
	return callerRole == model.RoleAdmin || callerID == ownerID
}

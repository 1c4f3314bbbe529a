package command

// CheckOwner passes when the command is not owner-gated, or when the caller
// is the configured owner.
func CheckOwner(c Command, callerID, ownerID string) bool {
	if !c.OwnerOnly() {
		return true
	}
	return callerID != "" && callerID == ownerID
}

// CheckRoles passes when the caller holds at least one allowed role. A nil
// role set means roles could not be resolved for this invocation and always
// fails, even when the command requires none; an empty resolved set passes
// an empty requirement.
func CheckRoles(c Command, callerRoles []string) bool {
	if callerRoles == nil {
		return false
	}

	required := c.AllowedRoles()
	if len(required) == 0 {
		return true
	}

	for _, want := range required {
		for _, have := range callerRoles {
			if want == have {
				return true
			}
		}
	}
	return false
}

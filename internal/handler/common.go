package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/workflow"
)

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.  JWT numeric claims decode as float64, so a
// few representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentActor builds the workflow actor from the authenticated
// request context.  The role defaults to USER when the claim is
// missing or malformed; the JWT middleware rejected the request long
// before that can matter.
func currentActor(c echo.Context) (workflow.Actor, error) {
	uid, err := getUserID(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	role, _ := c.Get("role").(string)
	if role == "" {
		role = workflow.RoleUser
	}
	return workflow.Actor{UserID: uid, Role: role}, nil
}

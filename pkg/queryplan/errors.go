package queryplan

import "github.com/iamNilotpal/stardb/pkg/errors"

func errUnknownQuery(query int) error {
	return errors.NewPlannerError(
		nil, errors.ErrorCodeUnknownQuery, "unknown query selector",
	).WithDetail("query", query).WithDetail("valid", "0..3")
}

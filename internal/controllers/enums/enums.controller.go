package enumsController

import (
	"context"
	"fmt"

	. "cleanhub/internal/models"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type EnumsController struct {
	enums map[string][]string
	log   logger.Logger
}

type EnumsControllerInterface interface {
	Get(ctx context.Context, enumType string) (any, error)
}

func New() EnumsControllerInterface {
	return &EnumsController{
		enums: AllEnums(),
		log:   logger.New("enumsController"),
	}
}

// Get returns one enum's values, or every enum when enumType is empty.
func (c *EnumsController) Get(ctx context.Context, enumType string) (any, error) {
	if enumType == "" {
		return c.enums, nil
	}

	values, ok := c.enums[enumType]
	if !ok {
		return nil, c.log.Function("Get").TraceFromContext(ctx).
			ErrorWithType(types.ErrNotFound, fmt.Sprintf("Enum type %q not found.", enumType))
	}

	return values, nil
}

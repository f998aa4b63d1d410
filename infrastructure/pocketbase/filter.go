package pocketbase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Filter binds named placeholders ({:name}) in expr with escaped literals.
// Values are never interpolated raw, so user input cannot change the expression.
func Filter(expr string, params map[string]any) string {
	if len(params) == 0 {
		return expr
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{:"+name+"}", literal(value))
	}
	return strings.NewReplacer(pairs...).Replace(expr)
}

func literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return "'" + v.UTC().Format("2006-01-02 15:04:05.000Z") + "'"
	default:
		s := fmt.Sprint(v)
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
}

package repo

import (
	"strings"

	"gorm.io/gorm/clause"
)

// likeEscaper 关键字里的通配符按字面匹配。用 ! 而不是 \，MySQL 字符串里 \ 本身要转义。
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchConditionOf 关键字在 fields 上做大小写不敏感的子串匹配（多列 OR），
// 再与 conds 逐个 AND。没有任何条件时返回 nil。
// 两边都交给数据库的 LOWER，SQLite 只折叠 ASCII 时原样输入也能命中。
func SearchConditionOf(fields []string, keywords string, conds ...clause.Expression) clause.Expression {
	var exprs []clause.Expression

	if kw := strings.TrimSpace(keywords); kw != "" && len(fields) > 0 {
		pattern := "%" + likeEscaper.Replace(kw) + "%"
		like := make([]clause.Expression, 0, len(fields))
		for _, f := range fields {
			like = append(like, clause.Expr{
				SQL:  "LOWER(?) LIKE LOWER(?) ESCAPE '!'",
				Vars: []any{clause.Column{Name: f}, pattern},
			})
		}
		if len(like) == 1 {
			exprs = append(exprs, like[0])
		} else {
			exprs = append(exprs, clause.Or(like...))
		}
	}
	for _, c := range conds {
		if c != nil {
			exprs = append(exprs, c)
		}
	}

	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}

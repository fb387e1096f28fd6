package query

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/region"
	"mit.edu/dsg/godist/transaction"
)

// Resolver turns partition ids into descriptors. The partition catalog implements it.
type Resolver interface {
	Resolve(ids []common.PartitionID) (*region.RoutingTable, error)
}

// DecodeOptions supplies the values a plan document may omit.
type DecodeOptions struct {
	// Enable2PC is used when the document has no "enable_2pc" field.
	Enable2PC bool
	// NodeLimit bounds the decoded tree; see planner.PlanTree.SetNodeLimit.
	NodeLimit int
	// Resolver resolves partitions given by bare id. Without it, every partition must be
	// spelled out as a descriptor object in the statement-level "regions" list.
	Resolver Resolver
}

// DecodeDocument builds a QueryContext from a JSON plan document:
//
//	{
//	  "sql": "delete from t where id > 3",
//	  "autocommit": true,
//	  "need_separate": true,
//	  "enable_2pc": true,
//	  "regions": [{"id": 5, "address": "store-1:8110"}, 9],
//	  "insert_regions": [9],
//	  "plan": {"type": "packet", "op": "DELETE", "children": [...]}
//	}
//
// Scan nodes name their partitions by id in "regions"; ids are looked up in the
// statement-level table first and in the Resolver after that.
func DecodeDocument(doc []byte, opts DecodeOptions) (*QueryContext, error) {
	if !gjson.ValidBytes(doc) {
		return nil, common.NewPlanError(common.DecodeError, "plan document is not valid JSON")
	}
	root := gjson.ParseBytes(doc)

	d := &decoder{opts: opts, tree: planner.NewPlanTree()}
	d.tree.SetNodeLimit(opts.NodeLimit)

	stmt, err := d.decodeRegions(root.Get("regions"))
	if err != nil {
		return nil, err
	}
	d.statement = stmt

	qc := NewQueryContext(d.tree)
	qc.SQL = root.Get("sql").String()
	qc.Regions = stmt
	for i, entry := range root.Get("insert_regions").Array() {
		id, err := partitionID(entry, fmt.Sprintf("insert_regions[%d]", i))
		if err != nil {
			return nil, err
		}
		qc.InsertRegionIDs.Add(id)
	}
	qc.NeedSeparate = root.Get("need_separate").Bool()
	qc.Enable2PC = opts.Enable2PC
	if v := root.Get("enable_2pc"); v.Exists() {
		qc.Enable2PC = v.Bool()
	}
	if v := root.Get("autocommit"); v.Exists() {
		qc.RuntimeState.Autocommit = v.Bool()
	}
	qc.RuntimeState.ConnectionID = root.Get("connection_id").Uint()

	plan := root.Get("plan")
	if !plan.IsObject() {
		return nil, common.NewPlanError(common.DecodeError, "plan document has no \"plan\" object")
	}
	rootID, err := d.decodeNode(plan, "plan")
	if err != nil {
		return nil, err
	}
	if err := d.tree.SetRoot(rootID); err != nil {
		return nil, err
	}
	return qc, nil
}

type decoder struct {
	opts      DecodeOptions
	tree      *planner.PlanTree
	statement *region.RoutingTable
}

func decodeErr(path string, format string, args ...any) error {
	return common.NewPlanError(common.DecodeError, "%s: %s", path, fmt.Sprintf(format, args...))
}

func (d *decoder) decodeRegions(r gjson.Result) (*region.RoutingTable, error) {
	rt := &region.RoutingTable{}
	var byID []common.PartitionID
	for i, entry := range r.Array() {
		path := fmt.Sprintf("regions[%d]", i)
		switch {
		case entry.IsObject():
			id, err := partitionID(entry.Get("id"), path+".id")
			if err != nil {
				return nil, err
			}
			oid, err := objectID(entry.Get("table_oid"), path+".table_oid")
			if err != nil {
				return nil, err
			}
			rt.Set(region.Descriptor{
				ID:       id,
				TableOid: oid,
				Address:  entry.Get("address").String(),
				StartKey: entry.Get("start_key").String(),
				EndKey:   entry.Get("end_key").String(),
			})
		case entry.Type == gjson.Number:
			id, err := partitionID(entry, path)
			if err != nil {
				return nil, err
			}
			byID = append(byID, id)
		default:
			return nil, decodeErr(path, "expected descriptor object or partition id")
		}
	}
	if len(byID) > 0 {
		resolved, err := d.resolve(byID, "regions")
		if err != nil {
			return nil, err
		}
		rt.Merge(resolved)
	}
	return rt, nil
}

// partitionID reads a partition id, which must be an integer in the uint32 range.
func partitionID(r gjson.Result, path string) (common.PartitionID, error) {
	if r.Type != gjson.Number {
		return 0, decodeErr(path, "expected partition id, got %q", r.Raw)
	}
	id, err := strconv.ParseUint(r.Raw, 10, 32)
	if err != nil {
		return 0, decodeErr(path, "partition id %s is not an integer in [0, %d]", r.Raw, uint32(math.MaxUint32))
	}
	return common.PartitionID(id), nil
}

// objectID reads an optional table oid; absent means common.InvalidObjectID.
func objectID(r gjson.Result, path string) (common.ObjectID, error) {
	if !r.Exists() {
		return common.InvalidObjectID, nil
	}
	if r.Type != gjson.Number {
		return 0, decodeErr(path, "expected table oid, got %q", r.Raw)
	}
	oid, err := strconv.ParseUint(r.Raw, 10, 32)
	if err != nil {
		return 0, decodeErr(path, "table oid %s is not an integer in [0, %d]", r.Raw, uint32(math.MaxUint32))
	}
	return common.ObjectID(oid), nil
}

func (d *decoder) resolve(ids []common.PartitionID, path string) (*region.RoutingTable, error) {
	if d.opts.Resolver == nil {
		return nil, decodeErr(path, "partitions %v given by id but no catalog is available", ids)
	}
	return d.opts.Resolver.Resolve(ids)
}

// scanRouting resolves the partitions of one Scan. A Scan without "regions" is routed to
// the whole statement-level table.
func (d *decoder) scanRouting(r gjson.Result, path string) (*region.RoutingTable, error) {
	if !r.Exists() {
		return d.statement.Clone(), nil
	}
	rt := &region.RoutingTable{}
	var missing []common.PartitionID
	for i, entry := range r.Array() {
		id, err := partitionID(entry, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if desc, ok := d.statement.Get(id); ok {
			rt.Set(desc)
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		resolved, err := d.resolve(missing, path)
		if err != nil {
			return nil, err
		}
		rt.Merge(resolved)
	}
	return rt, nil
}

func (d *decoder) decodeNode(r gjson.Result, path string) (common.NodeID, error) {
	var children []common.NodeID
	for i, c := range r.Get("children").Array() {
		id, err := d.decodeNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return common.InvalidNodeID, err
		}
		children = append(children, id)
	}
	payload, err := d.decodePayload(r, path)
	if err != nil {
		return common.InvalidNodeID, err
	}
	return d.tree.NewNodeWithChildren(payload, children...)
}

func (d *decoder) decodePayload(r gjson.Result, path string) (planner.Payload, error) {
	typ := r.Get("type").String()
	table, err := objectID(r.Get("table"), path+".table")
	if err != nil {
		return nil, err
	}
	switch typ {
	case "packet":
		op, ok := planner.ParseOpType(r.Get("op").String())
		if !ok {
			return nil, decodeErr(path, "unknown op %q", r.Get("op").String())
		}
		return planner.NewPacketNode(op), nil
	case "scan":
		routing, err := d.scanRouting(r.Get("regions"), path+".regions")
		if err != nil {
			return nil, err
		}
		return planner.NewScanNode(table, routing), nil
	case "join":
		joinType, ok := parseJoinType(r.Get("join_type").String())
		if !ok {
			return nil, decodeErr(path, "unknown join type %q", r.Get("join_type").String())
		}
		pred, err := d.optionalExpr(r.Get("predicate"), path+".predicate")
		if err != nil {
			return nil, err
		}
		return planner.NewJoinNode(joinType, pred), nil
	case "filter":
		pred, err := d.optionalExpr(r.Get("predicate"), path+".predicate")
		if err != nil {
			return nil, err
		}
		return planner.NewFilterNode(pred), nil
	case "sort":
		var orderBy []planner.OrderByClause
		for i, c := range r.Get("order_by").Array() {
			e, err := d.decodeExpr(c, fmt.Sprintf("%s.order_by[%d]", path, i))
			if err != nil {
				return nil, err
			}
			dir := planner.SortOrderAscending
			if c.Get("desc").Bool() {
				dir = planner.SortOrderDescending
			}
			orderBy = append(orderBy, planner.OrderByClause{Expr: e, Direction: dir})
		}
		return planner.NewSortNode(orderBy), nil
	case "aggregate":
		var groupBy []planner.Expr
		for i, g := range r.Get("group_by").Array() {
			e, err := d.decodeExpr(g, fmt.Sprintf("%s.group_by[%d]", path, i))
			if err != nil {
				return nil, err
			}
			groupBy = append(groupBy, e)
		}
		var aggs []planner.AggregateClause
		for i, a := range r.Get("aggs").Array() {
			p := fmt.Sprintf("%s.aggs[%d]", path, i)
			fn, ok := planner.ParseAggregatorType(a.Get("func").String())
			if !ok {
				return nil, decodeErr(p, "unknown aggregate %q", a.Get("func").String())
			}
			e, err := d.decodeExpr(a.Get("arg"), p+".arg")
			if err != nil {
				return nil, err
			}
			aggs = append(aggs, planner.AggregateClause{Type: fn, Expr: e})
		}
		agg := planner.NewAggregateNode(groupBy, aggs)
		if v := r.Get("limit"); v.Exists() {
			agg.Limit = v.Int()
		}
		return agg, nil
	case "limit":
		return planner.NewLimitNode(r.Get("offset").Int(), r.Get("count").Int()), nil
	case "transaction":
		cmd, ok := transaction.ParseTxnCmd(r.Get("cmd").String())
		if !ok {
			return nil, decodeErr(path, "unknown transaction command %q", r.Get("cmd").String())
		}
		return planner.NewTransactionNode(cmd), nil
	case "insert", "replace":
		return planner.NewInsertNode(table, typ == "replace"), nil
	case "update":
		assignments := make(map[string]planner.Expr)
		var err error
		r.Get("set").ForEach(func(col, val gjson.Result) bool {
			var e planner.Expr
			e, err = d.decodeExpr(val, path+".set."+col.String())
			if err != nil {
				return false
			}
			assignments[col.String()] = e
			return true
		})
		if err != nil {
			return nil, err
		}
		return planner.NewUpdateNode(table, assignments), nil
	case "delete":
		return planner.NewDeleteNode(table), nil
	}
	return nil, decodeErr(path, "unknown node type %q", typ)
}

func parseJoinType(s string) (planner.JoinType, bool) {
	switch s {
	case "", "inner":
		return planner.InnerJoin, true
	case "left":
		return planner.LeftJoin, true
	case "right":
		return planner.RightJoin, true
	case "semi":
		return planner.SemiJoin, true
	}
	return 0, false
}

func (d *decoder) optionalExpr(r gjson.Result, path string) (planner.Expr, error) {
	if !r.Exists() {
		return nil, nil
	}
	return d.decodeExpr(r, path)
}

// decodeExpr accepts
//
//	{"column": "name", "offset": 1, "type": "string"}
//	{"int": 5} / {"string": "x"} / {"null": "int"}
//	{"op": ">", "left": {...}, "right": {...}}
//	{"and": [{...}, {...}]} / {"or": [{...}, {...}]}
func (d *decoder) decodeExpr(r gjson.Result, path string) (planner.Expr, error) {
	switch {
	case r.Get("column").Exists():
		t, err := parseType(r.Get("type").String(), path)
		if err != nil {
			return nil, err
		}
		return planner.NewColumnValueExpression(int(r.Get("offset").Int()), t, r.Get("column").String()), nil
	case r.Get("int").Exists():
		return planner.NewConstantValueExpression(common.NewIntValue(r.Get("int").Int())), nil
	case r.Get("string").Exists():
		return planner.NewConstantValueExpression(common.NewStringValue(r.Get("string").String())), nil
	case r.Get("null").Exists():
		t, err := parseType(r.Get("null").String(), path)
		if err != nil {
			return nil, err
		}
		return planner.NewConstantValueExpression(common.NewNullValue(t)), nil
	case r.Get("op").Exists():
		op, ok := planner.ParseComparisonType(r.Get("op").String())
		if !ok {
			return nil, decodeErr(path, "unknown comparison %q", r.Get("op").String())
		}
		left, err := d.decodeExpr(r.Get("left"), path+".left")
		if err != nil {
			return nil, err
		}
		right, err := d.decodeExpr(r.Get("right"), path+".right")
		if err != nil {
			return nil, err
		}
		return planner.NewComparisonExpression(left, right, op), nil
	case r.Get("and").Exists():
		return d.decodeLogic(r.Get("and"), planner.And, path+".and")
	case r.Get("or").Exists():
		return d.decodeLogic(r.Get("or"), planner.Or, path+".or")
	}
	return nil, decodeErr(path, "unrecognised expression %s", r.Raw)
}

func (d *decoder) decodeLogic(r gjson.Result, logic planner.BinaryLogicType, path string) (planner.Expr, error) {
	operands := r.Array()
	if len(operands) < 2 {
		return nil, decodeErr(path, "needs at least two operands")
	}
	acc, err := d.decodeExpr(operands[0], path+"[0]")
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(operands); i++ {
		next, err := d.decodeExpr(operands[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		acc = planner.NewBinaryLogicExpression(acc, next, logic)
	}
	return acc, nil
}

func parseType(s string, path string) (common.Type, error) {
	switch s {
	case "", "int":
		return common.IntType, nil
	case "string":
		return common.StringType, nil
	}
	return common.DefaultType, decodeErr(path, "unknown type %q", s)
}

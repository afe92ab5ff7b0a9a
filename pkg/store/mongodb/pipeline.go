package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/paginate"
	"github.com/docshape/docshape/pkg/populate"
)

const identityField = "_id"

// sortDoc converts sort fields to an ordered $sort document. bson.D keeps
// the left-to-right priority a map would lose.
func sortDoc(fields []paginate.SortField) bson.D {
	out := make(bson.D, 0, len(fields))
	for _, f := range fields {
		direction := 1
		if f.Descending {
			direction = -1
		}
		out = append(out, bson.E{Key: f.Key, Value: direction})
	}
	return out
}

// projectionDoc builds a field-selection projection. Selection only, no
// renames.
func projectionDoc(fields []string) bson.D {
	out := make(bson.D, 0, len(fields))
	for _, f := range fields {
		out = append(out, bson.E{Key: f, Value: 1})
	}
	return out
}

// lookupStages translates a populate plan into $lookup stages, one per node.
// Each relation joins the collection named after it on its identity field;
// the node's projection and any child lookups run inside the join pipeline.
func lookupStages(plan []populate.Node) []bson.D {
	stages := make([]bson.D, 0, len(plan))
	for _, node := range plan {
		inner := make(bson.A, 0, len(node.Children)+1)
		for _, stage := range lookupStages(node.Children) {
			inner = append(inner, stage)
		}
		if len(node.Fields) > 0 {
			inner = append(inner, bson.D{{Key: "$project", Value: projectionDoc(node.Fields)}})
		}
		stages = append(stages, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: node.Path},
			{Key: "localField", Value: node.Path},
			{Key: "foreignField", Value: identityField},
			{Key: "as", Value: node.Path},
			{Key: "pipeline", Value: inner},
		}}})
	}
	return stages
}

// pagingStages appends the sort/skip/limit tail a query computes.
func pagingStages(q paginate.FindQuery) []bson.D {
	var stages []bson.D
	if len(q.Sort) > 0 {
		stages = append(stages, bson.D{{Key: "$sort", Value: sortDoc(q.Sort)}})
	}
	if q.Skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: q.Skip}})
	}
	if !q.Unbounded {
		stages = append(stages, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	return stages
}

// findPipeline renders a populated find as an aggregation: match, paging
// tail, lookups, then projection.
func findPipeline(q paginate.FindQuery) []bson.D {
	filter := q.Filter
	if filter == nil {
		filter = document.Document{}
	}
	pipeline := []bson.D{{{Key: "$match", Value: toBSON(filter)}}}
	pipeline = append(pipeline, pagingStages(q)...)
	pipeline = append(pipeline, lookupStages(q.Populate)...)
	if len(q.Projection) > 0 {
		// Keep the joined relations visible alongside the selected fields.
		selected := make([]string, 0, len(q.Projection)+len(q.Populate))
		selected = append(selected, q.Projection...)
		for _, node := range q.Populate {
			selected = append(selected, node.Path)
		}
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projectionDoc(selected)}})
	}
	return pipeline
}

// toBSON converts an engine document to a driver document.
func toBSON(doc document.Document) bson.M {
	return bson.M(doc)
}

// stagesToPipeline converts caller-supplied pipeline stages for the driver.
func stagesToPipeline(stages []document.Document) []interface{} {
	out := make([]interface{}, 0, len(stages))
	for _, stage := range stages {
		out = append(out, toBSON(stage))
	}
	return out
}

// normalize rewrites the driver's decoded shapes (bson.M, bson.D, bson.A)
// into the engine's plain document model so the path accessor can walk them.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := document.Document{}
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[string]interface{}:
		out := document.Document{}
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case document.Document:
		out := document.Document{}
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		out := document.Document{}
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func normalizeDocs(raw []bson.M) []document.Document {
	docs := make([]document.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, normalize(r).(document.Document))
	}
	return docs
}

package update

import "github.com/huynguyen789/AIToDoList/internal/model"

func nextFilter(f model.Filter) model.Filter {
	switch f {
	case model.FilterAll:
		return model.FilterActive
	case model.FilterActive:
		return model.FilterCompleted
	default:
		return model.FilterAll
	}
}

package handlers

import "stockbook/internal/infrastructure/http/v1/dto"

func dtoList[T, R any](items []T, fn func(T) R) dto.ListResponse[R] {
	return dto.NewListResponse(dto.MapList(items, fn))
}

package repositories

import (
	"context"

	"medical-inventory/internal/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// equipmentLinked - строка, ссылающаяся на аппарат (обслуживание, событие).
type equipmentLinked[R any] interface {
	*R
	EquipmentRef() uuid.UUID
	AttachEquipment(*entities.EquipmentSummary)
}

// selectWithEquipment возвращает строки вместе с краткой карточкой аппарата.
// Основной путь - один запрос со встроенным ресурсом. Если драйвер так не умеет
// или встроенная выборка отказала, карточки догружаются одним запросом IN (...)
// и склеиваются в памяти. Строки без аппарата остаются с Equipment == nil.
func selectWithEquipment[R any, PR equipmentLinked[R]](
	ctx context.Context,
	table Table[R],
	equipment Table[entities.Equipment],
	q Query,
	logger *zap.Logger,
) ([]R, error) {
	if table.SupportsEmbed() {
		embedded := q
		embedded.Embed = true
		rows, err := table.Select(ctx, embedded)
		if err == nil {
			return rows, nil
		}
		if !isFallbackable(ctx, err) {
			return nil, err
		}
		logger.Warn("Встроенная выборка аппаратов не удалась, склеиваем вручную", zap.Error(err))
	}

	q.Embed = false
	rows, err := table.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := attachEquipment[R, PR](ctx, rows, equipment); err != nil {
		return nil, err
	}
	return rows, nil
}

func attachEquipment[R any, PR equipmentLinked[R]](ctx context.Context, rows []R, equipment Table[entities.Equipment]) error {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]string, 0)
	for i := range rows {
		ref := PR(&rows[i]).EquipmentRef()
		if _, ok := seen[ref]; ok || ref == uuid.Nil {
			continue
		}
		seen[ref] = struct{}{}
		ids = append(ids, ref.String())
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := equipment.Select(ctx, Query{}.Where("id", OpIn, ids))
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*entities.EquipmentSummary, len(found))
	for _, e := range found {
		byID[e.ID] = e.Summary()
	}
	for i := range rows {
		p := PR(&rows[i])
		p.AttachEquipment(byID[p.EquipmentRef()])
	}
	return nil
}

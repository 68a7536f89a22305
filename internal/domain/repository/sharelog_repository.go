package repository

import "github.com/tu-usuario/labstock-api/internal/domain/entity"

// ShareLogRepository define el puerto de la bitácora de compartición.
// Su fallo es tolerable: los usecases lo registran y lo descartan.
type ShareLogRepository interface {
	Insert(log *entity.ShareLog) error
}

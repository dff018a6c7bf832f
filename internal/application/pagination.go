package application

import "errors"

// ページング指定のエラー定義
var ErrInvalidPagination = errors.New("ページ指定は1以上である必要があります")

const maxPerPage = 100

// pageBounds は1始まりの (page, perpage) を LIMIT / OFFSET に変換する
func pageBounds(page, perPage int) (limit, offset int, err error) {
	if page < 1 || perPage < 1 {
		return 0, 0, ErrInvalidPagination
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return perPage, (page - 1) * perPage, nil
}

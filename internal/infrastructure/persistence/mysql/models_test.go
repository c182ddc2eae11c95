package mysql

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// TestReviewModel_UniqueIndexNullable 评价表唯一索引的商品列必须可空
// MySQL的唯一索引跳过NULL行；若商品列用0占位，用户评价第一本普通图书后
// (user_id, student_book_id=0)就被占用，无法再评价任何其他普通图书
func TestReviewModel_UniqueIndexNullable(t *testing.T) {
	assertProductColumnsNullable(t, &ReviewModel{}, "uk_user_book", "uk_user_sbook")
}

// TestFavouriteModel_UniqueIndexNullable 收藏表同上
func TestFavouriteModel_UniqueIndexNullable(t *testing.T) {
	assertProductColumnsNullable(t, &FavouriteModel{}, "uk_fav_book", "uk_fav_sbook")
}

func assertProductColumnsNullable(t *testing.T, model interface{}, indexNames ...string) {
	t.Helper()

	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err, "解析模型失败")

	indexes := map[string]*schema.Index{}
	for _, idx := range s.ParseIndexes() {
		indexes[idx.Name] = idx
	}

	for _, name := range indexNames {
		idx, ok := indexes[name]
		require.True(t, ok, "唯一索引%s不存在", name)
		assert.Equal(t, "UNIQUE", idx.Class, "%s应为唯一索引", name)

		for _, f := range idx.Fields {
			if f.DBName == "user_id" {
				continue
			}
			assert.False(t, f.NotNull, "%s的商品列%s必须可空", name, f.DBName)
			assert.Equal(t, reflect.Ptr, f.FieldType.Kind(),
				"%s的商品列%s必须映射为指针（存NULL而不是0）", name, f.DBName)
		}
	}
}

// TestNullableID 0值哨兵与NULL的互转
// 两本不同普通图书的评价行student_book_id都必须是NULL，互不撞索引
func TestNullableID(t *testing.T) {
	assert.Nil(t, nullableID(0), "0值哨兵应映射为NULL")

	p := nullableID(7)
	require.NotNil(t, p)
	assert.Equal(t, uint(7), *p)

	assert.Equal(t, uint(0), idValue(nil), "NULL应映射回0值哨兵")
	assert.Equal(t, uint(7), idValue(p))
}

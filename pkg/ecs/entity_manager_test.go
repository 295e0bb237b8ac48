package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y    float64
	Opacity float64
}

type testLayoutComponent struct {
	Left, Top float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestExists(t *testing.T) {
	em := NewEntityManager()

	if em.Exists(InvalidEntity) {
		t.Error("InvalidEntity should never exist")
	}

	id := em.CreateEntity()
	if !em.Exists(id) {
		t.Error("Created entity should exist")
	}

	em.DestroyEntity(id)
	// 标记后、清理前仍视为挂载
	if !em.Exists(id) {
		t.Error("Entity should exist until RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should not exist after cleanup")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	tf := &testTransformComponent{X: 100, Y: 200}
	em.AddComponent(id, tf)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransformComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testTransformComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testTransformComponent{Opacity: 0.5})

	tf, ok := GetComponent[*testTransformComponent](em, id)
	if !ok {
		t.Fatal("generic GetComponent should find the component")
	}
	if tf.Opacity != 0.5 {
		t.Errorf("Opacity = %v, 期望 0.5", tf.Opacity)
	}

	// 同一指针：修改对组件存储可见
	tf.Opacity = 1
	again, _ := GetComponent[*testTransformComponent](em, id)
	if again.Opacity != 1 {
		t.Error("generic GetComponent should return the stored pointer")
	}

	if _, ok := GetComponent[*testLayoutComponent](em, id); ok {
		t.Error("missing component type should not be found")
	}
	if !HasComponent[*testTransformComponent](em, id) {
		t.Error("HasComponent should report stored component")
	}

	RemoveComponent[*testTransformComponent](em, id)
	if HasComponent[*testTransformComponent](em, id) {
		t.Error("component should be removed")
	}
}

func TestGetEntitiesWithOrdered(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	ids := make([]EntityID, 0, 6)
	for i := 0; i < 6; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransformComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testLayoutComponent{})
		}
		ids = append(ids, id)
	}

	both := GetEntitiesWith2[*testTransformComponent, *testLayoutComponent](em)
	want := []EntityID{ids[0], ids[2], ids[4]}
	if !reflect.DeepEqual(both, want) {
		t.Errorf("GetEntitiesWith2 = %v, 期望 %v", both, want)
	}

	// 多次查询顺序稳定
	for i := 0; i < 10; i++ {
		all := GetEntitiesWith1[*testTransformComponent](em)
		if !reflect.DeepEqual(all, ids) {
			t.Fatalf("query order not stable: %v", all)
		}
	}
}

func TestOnDestroyListener(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	var removed []EntityID
	em.OnDestroy(func(id EntityID) { removed = append(removed, id) })

	em.DestroyEntity(id2)
	em.DestroyEntity(id1)
	// 重复标记只通知一次
	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()

	want := []EntityID{id2, id1}
	if !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, 期望 %v", removed, want)
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, 期望 0", em.EntityCount())
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testTransformComponent{})
	em.AddComponent(id2, &testTransformComponent{})
	em.AddComponent(id3, &testTransformComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.HasComponent(id1, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("id3 should be removed")
	}
}

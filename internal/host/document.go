// internal/host/document.go
package host

import "go-backdrop/internal/surface"

// Node — элемент документа, в который можно вложить поверхности.
type Node struct {
	id       string
	children []surface.Surface
	attached bool
}

// ID возвращает идентификатор узла
func (n *Node) ID() string { return n.id }

// Attached сообщает, находится ли узел в документе.
func (n *Node) Attached() bool { return n.attached }

// Append добавляет поверхность последним дочерним элементом.
// Если поверхность уже вложена, она переносится в конец.
func (n *Node) Append(s surface.Surface) {
	n.Remove(s)
	n.children = append(n.children, s)
}

// Remove отсоединяет поверхность. Возвращает false, если её не было.
func (n *Node) Remove(s surface.Surface) bool {
	for i, c := range n.children {
		if c == s {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// Clear удаляет все дочерние поверхности и возвращает их.
func (n *Node) Clear() []surface.Surface {
	removed := n.children
	n.children = nil
	return removed
}

// Contains проверяет, вложена ли поверхность в узел.
func (n *Node) Contains(s surface.Surface) bool {
	for _, c := range n.children {
		if c == s {
			return true
		}
	}
	return false
}

// Children возвращает копию списка дочерних поверхностей.
func (n *Node) Children() []surface.Surface {
	out := make([]surface.Surface, len(n.children))
	copy(out, n.children)
	return out
}

// Len возвращает число дочерних поверхностей.
func (n *Node) Len() int { return len(n.children) }

// Document — упорядоченный набор узлов верхнего уровня.
// Идентификаторы не обязаны быть уникальными, как и в DOM.
type Document struct {
	nodes []*Node
}

// NewDocument создаёт пустой документ
func NewDocument() *Document {
	return &Document{}
}

// Create создаёт узел и вставляет его первым (под всем остальным содержимым).
func (d *Document) Create(id string) *Node {
	n := &Node{id: id, attached: true}
	d.nodes = append([]*Node{n}, d.nodes...)
	return n
}

// ElementByID возвращает первый узел с данным id или nil.
func (d *Document) ElementByID(id string) *Node {
	for _, n := range d.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

// CountByID возвращает число узлов с данным id.
func (d *Document) CountByID(id string) int {
	count := 0
	for _, n := range d.nodes {
		if n.id == id {
			count++
		}
	}
	return count
}

// Remove убирает узел из документа вместе с его дочерними поверхностями.
func (d *Document) Remove(n *Node) {
	for i, node := range d.nodes {
		if node == n {
			d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
			n.attached = false
			return
		}
	}
}

// Nodes возвращает узлы в порядке отрисовки (первый — самый нижний).
func (d *Document) Nodes() []*Node {
	out := make([]*Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

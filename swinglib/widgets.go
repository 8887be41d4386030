package swinglib

import (
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// ---------------------------------------------------------------------
// tables
// ---------------------------------------------------------------------

// GetTableRowCount returns the number of rows in the table matching locator.
func (s *Session) GetTableRowCount(locator string) (int, error) {
	return s.intGetter(locator, "getTableRowCount", nil, "count")
}

// GetTableColumnCount returns the number of columns in the table matching
// locator.
func (s *Session) GetTableColumnCount(locator string) (int, error) {
	return s.intGetter(locator, "getTableColumnCount", nil, "count")
}

// GetTableCellValue returns the text of one cell of the table matching
// locator. column may be a 0-based index or a column header name.
func (s *Session) GetTableCellValue(locator string, row int, column any) (string, error) {
	result, err := s.withResolvedHandle(locator, func(handle element.ComponentHandle) (jsonvalue.Value, error) {
		return s.call("getTableCellValue", jsonvalue.Object(map[string]jsonvalue.Value{
			"componentId": jsonvalue.Number(float64(handle)),
			"row":         jsonvalue.Number(float64(row)),
			"column":      valueOrIndex(column),
		}))
	})
	if err != nil {
		return "", err
	}
	v, _ := result.Get("value").AsString()
	return v, nil
}

// SelectTableCell selects one cell of the table matching locator.
func (s *Session) SelectTableCell(locator string, row int, column any) error {
	return s.act(locator, "selectTableCell", map[string]jsonvalue.Value{
		"row":    jsonvalue.Number(float64(row)),
		"column": valueOrIndex(column),
	})
}

// SelectTableRow selects an entire row of the table matching locator.
func (s *Session) SelectTableRow(locator string, row int) error {
	return s.act(locator, "selectTableRow", map[string]jsonvalue.Value{"row": jsonvalue.Number(float64(row))})
}

// ---------------------------------------------------------------------
// trees
// ---------------------------------------------------------------------

// treePath turns a "|"-delimited path into the wire form the agent
// expects, unchanged: the delimiter is the protocol's own, so no
// translation beyond accepting it verbatim is needed.
func treePath(path string) string { return path }

// ExpandTreeNode expands the tree node at path (a "|"-delimited chain of
// labels) within the tree widget matching locator.
func (s *Session) ExpandTreeNode(locator, path string) error {
	return s.act(locator, "expandTreeNode", map[string]jsonvalue.Value{"path": jsonvalue.String(treePath(path))})
}

// CollapseTreeNode collapses the tree node at path.
func (s *Session) CollapseTreeNode(locator, path string) error {
	return s.act(locator, "collapseTreeNode", map[string]jsonvalue.Value{"path": jsonvalue.String(treePath(path))})
}

// SelectTreeNode selects the tree node at path within the tree widget
// matching locator.
func (s *Session) SelectTreeNode(locator, path string) error {
	return s.act(locator, "selectTreeNode", map[string]jsonvalue.Value{"path": jsonvalue.String(treePath(path))})
}

// GetTreeNodes lists the labels of the tree widget matching locator,
// pipe-joined per node depth the same way path arguments are expressed.
// When selectedOnly is true, only the currently selected node's ancestry is
// returned.
func (s *Session) GetTreeNodes(locator string, selectedOnly bool) ([]string, error) {
	result, err := s.withResolvedHandle(locator, func(handle element.ComponentHandle) (jsonvalue.Value, error) {
		return s.call("getTreeNodes", jsonvalue.Object(map[string]jsonvalue.Value{
			"componentId":  jsonvalue.Number(float64(handle)),
			"selectedOnly": jsonvalue.Bool(selectedOnly),
		}))
	})
	if err != nil {
		return nil, err
	}
	items, _ := result.Get("nodes").AsArray()
	out := make([]string, len(items))
	for i, v := range items {
		out[i], _ = v.AsString()
	}
	return out, nil
}

// ---------------------------------------------------------------------
// menus
// ---------------------------------------------------------------------

// SelectMenu invokes the menu item at path (e.g. "File|Save As...") on the
// application's menu bar. timeout bounds how long the agent waits for the
// menu to become available; zero uses the agent's own default.
func (s *Session) SelectMenu(path string, timeout time.Duration) error {
	params := map[string]jsonvalue.Value{"path": jsonvalue.String(path)}
	if timeout > 0 {
		params["timeout"] = jsonvalue.Number(timeout.Seconds())
	}
	_, err := s.call("selectMenu", jsonvalue.Object(params))
	return err
}

// SelectFromPopupMenu invokes the item at path within the context menu
// currently open (typically after a RightClick), without needing a locator
// to anchor the popup itself.
func (s *Session) SelectFromPopupMenu(path string) error {
	_, err := s.call("selectFromPopupMenu", jsonvalue.Object(map[string]jsonvalue.Value{
		"path": jsonvalue.String(path),
	}))
	return err
}

// ---------------------------------------------------------------------
// shared getter plumbing
// ---------------------------------------------------------------------

func (s *Session) intGetter(locator, method string, extra map[string]jsonvalue.Value, field string) (int, error) {
	result, err := s.withResolvedHandle(locator, func(handle element.ComponentHandle) (jsonvalue.Value, error) {
		params := map[string]jsonvalue.Value{"componentId": jsonvalue.Number(float64(handle))}
		for k, v := range extra {
			params[k] = v
		}
		return s.call(method, jsonvalue.Object(params))
	})
	if err != nil {
		return 0, err
	}
	n, ok := result.Get(field).AsNumber()
	if !ok {
		// some agent builds return the scalar bare rather than wrapped
		if txt := result.Text(); txt != "" {
			if parsed, perr := strconv.Atoi(strings.TrimSpace(txt)); perr == nil {
				return parsed, nil
			}
		}
		return 0, nil
	}
	return int(n), nil
}

// Package canvas is the core engine of an interactive visual design editor:
// a workspace in which blocks, ports, and wires are composed on an infinite
// 2D canvas, with orthogonal auto-routed wires snapped to a discrete lattice
// ("fabric"), undoable edits, JSON persistence, and projection to/from a
// higher-level link/node design representation.
//
// The package owns the data model, the command system, the fabric and
// router, the interaction controllers, and the JSON/design projections. It
// does not render anything or capture input itself — those are host
// concerns. A host drives the package by constructing a [Document],
// dispatching pointer events to the [SelectionController]/[DragController]/
// [LinkingController], and reading a [RenderContext] back out to paint.
//
// # Quick start
//
//	doc := canvas.NewDocument(canvas.DefaultFabricStep)
//	block := doc.CreateBlock(canvas.SceneRect{X: 0, Y: 0, Width: 80, Height: 40}, true)
//	block.AddPort(canvas.SideRight, 0.5, canvas.RoleProducer, "")
//
// # Items
//
// Every item on the canvas is a [CanvasItem]: either a [Block] or a [Wire].
// The [Document] owns an ordered slice of items; ports live on blocks;
// wires hold [Endpoint] values that reference ports by id, never by pointer.
//
// # Commands and undo
//
// Block moves, deletions, route-override drags and the context-menu actions
// are applied as [Command] values through a [CommandManager] and can be
// undone. See [MoveItemCommand], [CreateItemCommand], [DeleteItemCommand],
// [DeletePortCommand], and [CompositeCommand]. The wires, hubs and ports the
// [LinkingController] creates, and the endpoint reattachments the
// [DragController] makes, are applied to the Document directly and are not
// recorded on the undo stack.
//
// # Routing
//
// [Router] computes orthogonal paths between two fabric coordinates using
// an A* search with a turn penalty, consulted lazily by a [RenderContext]
// during painting and hit-testing. The [ViewState] a render context is
// bound to carries optional pan/zoom smoothing via [gween].
//
// [gween]: https://github.com/tanema/gween
package canvas
